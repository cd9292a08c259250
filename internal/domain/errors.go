package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both a missing resource and one the caller may not
	// see. The two are deliberately indistinguishable so users cannot probe
	// for other users' tasks.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the resource exists but the caller has no rights
	// over it. Used for tag mutation only.
	ErrForbidden = errors.New("operation not allowed")

	// ErrNameConflict means a tag name collides within its uniqueness scope.
	ErrNameConflict = errors.New("tag name already in use")

	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError carries field-level messages for a malformed request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// TagsNotFoundError reports tag ids that could not be resolved when linking
// tags to a task. Nonexistent ids and other users' personal tags are reported
// the same way.
type TagsNotFoundError struct {
	IDs []int64
}

func (e *TagsNotFoundError) Error() string {
	return fmt.Sprintf("tags not found or not accessible: %v", e.IDs)
}
