package repository

import (
	"context"
	"errors"

	"task_manager/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TagRepository owns the tag namespace. Uniqueness is enforced by two
// partial unique indexes: (name, user_id) for personal tags and (name)
// for system tags (user_id IS NULL), so concurrent find-or-create calls
// converge on a single row instead of racing check-then-act.
type TagRepository struct {
	db *pgxpool.Pool
}

func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

const tagColumns = `id, name, color, user_id, created_at, updated_at`

// ListVisible returns all system tags plus the user's personal tags,
// system tags first, alphabetical within each group.
func (r *TagRepository) ListVisible(ctx context.Context, userID int64) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tagColumns+`
		 FROM tags
		 WHERE user_id IS NULL OR user_id = $1
		 ORDER BY (user_id IS NOT NULL), name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

func (r *TagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = $1`,
		id,
	)
	t, err := scanTag(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// SystemNameExists reports whether a system tag already uses the name.
func (r *TagRepository) SystemNameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE user_id IS NULL AND name = $1)`,
		name,
	).Scan(&exists)
	return exists, err
}

// PersonalNameExists reports whether another personal tag of the same user
// uses the name. excludeID skips self-comparison on rename.
func (r *TagRepository) PersonalNameExists(ctx context.Context, userID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		    SELECT 1 FROM tags
		    WHERE user_id = $1 AND name = $2 AND id <> $3
		 )`,
		userID, name, excludeID,
	).Scan(&exists)
	return exists, err
}

// FindOrCreatePersonal atomically returns the user's tag with the given
// name, creating it when absent. The insert rides on the partial unique
// index; when another request wins the race the fallback select picks up
// the winner's row.
func (r *TagRepository) FindOrCreatePersonal(ctx context.Context, userID int64, name, color string) (*domain.Tag, bool, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tags (name, color, user_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name, user_id) WHERE user_id IS NOT NULL DO NOTHING
		 RETURNING `+tagColumns,
		name, color, userID,
	)
	t, err := scanTag(row)
	if err == nil {
		return t, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = $1 AND name = $2`,
		userID, name,
	)
	t, err = scanTag(row)
	if err != nil {
		return nil, false, err
	}
	return t, false, nil
}

// FindOrCreateSystem is the idempotent primitive the boot-time seed relies
// on: repeated calls with the same name always converge on one row.
func (r *TagRepository) FindOrCreateSystem(ctx context.Context, name, color string) (*domain.Tag, bool, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO tags (name, color, user_id)
		 VALUES ($1, $2, NULL)
		 ON CONFLICT (name) WHERE user_id IS NULL DO NOTHING
		 RETURNING `+tagColumns,
		name, color,
	)
	t, err := scanTag(row)
	if err == nil {
		return t, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	row = r.db.QueryRow(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id IS NULL AND name = $1`,
		name,
	)
	t, err = scanTag(row)
	if err != nil {
		return nil, false, err
	}
	return t, false, nil
}

func (r *TagRepository) Update(ctx context.Context, t *domain.Tag) error {
	return r.db.QueryRow(ctx,
		`UPDATE tags SET name = $1, color = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING updated_at`,
		t.Name, t.Color, t.ID,
	).Scan(&t.UpdatedAt)
}

// Delete removes the tag. Task associations go with it via the FK cascade
// on task_tags; tasks themselves are untouched.
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ResolveVisible fetches the tags from ids that the user may reference:
// system tags or the user's own. Ids that do not resolve are simply absent
// from the result.
func (r *TagRepository) ResolveVisible(ctx context.Context, userID int64, ids []int64) ([]*domain.Tag, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tagColumns+`
		 FROM tags
		 WHERE id = ANY($1) AND (user_id IS NULL OR user_id = $2)
		 ORDER BY (user_id IS NOT NULL), name`,
		ids, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Color,
		&t.UserID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTags(rows pgx.Rows) ([]*domain.Tag, error) {
	res := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}
