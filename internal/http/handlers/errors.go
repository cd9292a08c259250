package handlers

import (
	"errors"
	"net/http"

	"task_manager/internal/domain"
	"task_manager/internal/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses. Anything unexpected
// is logged and reported as a detail-free internal error.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var tnf *domain.TagsNotFoundError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "messages": verr.Messages})
	case errors.As(err, &tnf):
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more tags not found", "tag_ids": tnf.IDs})
	case errors.Is(err, domain.ErrNameConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag name already in use"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "operation not allowed"})
	default:
		logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
