package repository

import (
	"context"
	"errors"

	"task_manager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns the user's tasks matching the filter, each joined with its
// tags.
func (r *TaskRepository) List(ctx context.Context, f domain.TaskFilter) ([]*domain.Task, error) {
	query, args := buildTaskListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []*domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetByID fetches a task scoped to its owner. A task belonging to another
// user is reported exactly like a missing one.
func (r *TaskRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, description, status, created_at, updated_at
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	tasks := []*domain.Task{&t}
	if err := r.loadTags(ctx, tasks); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts the task and its tag links in one transaction. Tag ids
// must already be validated; a failure on either statement rolls back both.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task, tagIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Title, t.Description, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertLinks(ctx, tx, t.ID, tagIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update persists the task's fields and, when tagIDs is non-nil, replaces
// the full association set with exactly those ids inside the same
// transaction. A nil tagIDs leaves the links untouched.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task, tagIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING updated_at`,
		t.Title, t.Description, t.Status, t.ID, t.UserID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if tagIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM task_tags WHERE task_id = $1`, t.ID); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, t.ID, tagIDs); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func insertLinks(ctx context.Context, tx pgx.Tx, taskID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			taskID, tagID,
		); err != nil {
			return err
		}
	}
	return nil
}

// loadTags attaches tags to every task in one query instead of one per task.
func (r *TaskRepository) loadTags(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(tasks))
	byID := make(map[int64]*domain.Task, len(tasks))
	for _, t := range tasks {
		t.Tags = []*domain.Tag{}
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	rows, err := r.db.Query(ctx,
		`SELECT tt.task_id, tg.id, tg.name, tg.color, tg.user_id, tg.created_at, tg.updated_at
		 FROM task_tags tt
		 JOIN tags tg ON tg.id = tt.tag_id
		 WHERE tt.task_id = ANY($1)
		 ORDER BY (tg.user_id IS NOT NULL), tg.name`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID int64
		var tg domain.Tag
		if err := rows.Scan(&taskID, &tg.ID, &tg.Name, &tg.Color, &tg.UserID, &tg.CreatedAt, &tg.UpdatedAt); err != nil {
			return err
		}
		if t, ok := byID[taskID]; ok {
			t.Tags = append(t.Tags, &tg)
		}
	}
	return rows.Err()
}
