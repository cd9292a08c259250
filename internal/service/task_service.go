package service

import (
	"context"
	"strings"

	"task_manager/internal/domain"
	"task_manager/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskService owns task lifecycle and the task-tag association rules.
// Every operation is scoped to the calling user; a task of another user is
// indistinguishable from a missing one.
type TaskService struct {
	tasks *repository.TaskRepository
	tags  *repository.TagRepository
}

func NewTaskService(db *pgxpool.Pool) *TaskService {
	return &TaskService{
		tasks: repository.NewTaskRepository(db),
		tags:  repository.NewTagRepository(db),
	}
}

// UpdateTaskParams carries the optional fields of a task update. Nil means
// "leave unchanged". A non-nil empty TagIDs clears all associations.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	TagIDs      *[]int64
}

func (s *TaskService) List(ctx context.Context, f domain.TaskFilter) ([]*domain.Task, error) {
	return s.tasks.List(ctx, f)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, userID, taskID)
}

// Create validates the requested tag set before anything is written: when
// any id does not resolve the task is not created at all.
func (s *TaskService) Create(ctx context.Context, userID int64, title, description string, tagIDs []int64) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}

	resolved, err := s.resolveTagSet(ctx, userID, tagIDs)
	if err != nil {
		return nil, err
	}

	t := &domain.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
	}
	if err := s.tasks.Create(ctx, t, tagIDsOf(resolved)); err != nil {
		return nil, err
	}
	t.Tags = resolved
	return t, nil
}

// Update applies the supplied fields to the caller's task. A supplied tag
// set fully replaces the existing associations; an absent one leaves them
// untouched.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, p UpdateTaskParams) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, domain.NewValidationError("title is required")
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, domain.NewValidationError("status must be PENDING or COMPLETED")
		}
		t.Status = *p.Status
	}

	var linkIDs []int64
	if p.TagIDs != nil {
		resolved, err := s.resolveTagSet(ctx, userID, *p.TagIDs)
		if err != nil {
			return nil, err
		}
		linkIDs = tagIDsOf(resolved)
		if linkIDs == nil {
			linkIDs = []int64{}
		}
		t.Tags = resolved
	}

	if err := s.tasks.Update(ctx, t, linkIDs); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	return s.tasks.Delete(ctx, userID, taskID)
}

// resolveTagSet validates that every requested tag id is visible to the
// user (system or own personal tag). Duplicates are collapsed; on any miss
// the unresolved ids are reported together, without distinguishing
// nonexistent ids from other users' tags.
func (s *TaskService) resolveTagSet(ctx context.Context, userID int64, tagIDs []int64) ([]*domain.Tag, error) {
	if len(tagIDs) == 0 {
		return []*domain.Tag{}, nil
	}

	distinct := make([]int64, 0, len(tagIDs))
	seen := make(map[int64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	resolved, err := s.tags.ResolveVisible(ctx, userID, distinct)
	if err != nil {
		return nil, err
	}

	if len(resolved) < len(distinct) {
		found := make(map[int64]struct{}, len(resolved))
		for _, t := range resolved {
			found[t.ID] = struct{}{}
		}
		var missing []int64
		for _, id := range distinct {
			if _, ok := found[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, &domain.TagsNotFoundError{IDs: missing}
	}
	return resolved, nil
}

func tagIDsOf(tags []*domain.Tag) []int64 {
	if len(tags) == 0 {
		return nil
	}
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
