package repository

import (
	"fmt"
	"strings"

	"task_manager/internal/domain"
)

// buildTaskListQuery composes the owner-scoped task listing query with the
// optional status and tag predicates. A pure helper: the same filter always
// yields the same SQL and argument list.
//
// The tag predicate is an inner join through task_tags, so a tag id that
// matches nothing (including a nonexistent or foreign id) yields an empty
// result set rather than an error.
func buildTaskListQuery(f domain.TaskFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT t.id, t.user_id, t.title, t.description, t.status, t.created_at, t.updated_at FROM tasks t`)

	args := []any{f.UserID}
	if f.TagID != nil {
		b.WriteString(` JOIN task_tags tt ON tt.task_id = t.id`)
	}

	b.WriteString(` WHERE t.user_id = $1`)
	if f.Status != nil {
		args = append(args, *f.Status)
		fmt.Fprintf(&b, ` AND t.status = $%d`, len(args))
	}
	if f.TagID != nil {
		args = append(args, *f.TagID)
		fmt.Fprintf(&b, ` AND tt.tag_id = $%d`, len(args))
	}

	b.WriteString(` ORDER BY t.created_at DESC, t.id DESC`)
	return b.String(), args
}
