package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"task_manager/internal/domain"

	"github.com/gin-gonic/gin"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	respondError(c, err)
	return w
}

func TestRespondError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("title is required"), http.StatusBadRequest},
		{&domain.TagsNotFoundError{IDs: []int64{1, 2}}, http.StatusBadRequest},
		{domain.ErrNameConflict, http.StatusBadRequest},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := respond(t, tc.err)
		if w.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, w.Code)
		}
	}
}

func TestRespondError_InternalHidesDetail(t *testing.T) {
	w := respond(t, errors.New("password_hash leaked in query"))
	if body := w.Body.String(); body != `{"error":"internal error"}` {
		t.Fatalf("internal errors must not expose detail: %s", body)
	}
}
