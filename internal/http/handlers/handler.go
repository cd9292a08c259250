package handlers

import (
	"task_manager/internal/repository"
	"task_manager/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	UserRepo *repository.UserRepository
	Tags     *service.TagService
	Tasks    *service.TaskService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:       db,
		UserRepo: repository.NewUserRepository(db),
		Tags:     service.NewTagService(db),
		Tasks:    service.NewTaskService(db),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
