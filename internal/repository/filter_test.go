package repository

import (
	"strings"
	"testing"

	"task_manager/internal/domain"
)

func TestBuildTaskListQuery_OwnerOnly(t *testing.T) {
	query, args := buildTaskListQuery(domain.TaskFilter{UserID: 7})

	if strings.Contains(query, "JOIN task_tags") {
		t.Fatalf("no tag filter given, query must not join task_tags: %s", query)
	}
	if !strings.Contains(query, "t.user_id = $1") {
		t.Fatalf("owner predicate missing: %s", query)
	}
	if len(args) != 1 || args[0].(int64) != 7 {
		t.Fatalf("expected args [7], got %v", args)
	}
}

func TestBuildTaskListQuery_StatusFilter(t *testing.T) {
	status := domain.TaskStatusCompleted
	query, args := buildTaskListQuery(domain.TaskFilter{UserID: 1, Status: &status})

	if !strings.Contains(query, "t.status = $2") {
		t.Fatalf("status predicate missing: %s", query)
	}
	if len(args) != 2 || args[1].(domain.TaskStatus) != domain.TaskStatusCompleted {
		t.Fatalf("expected status arg, got %v", args)
	}
}

func TestBuildTaskListQuery_TagFilter(t *testing.T) {
	tagID := int64(42)
	query, args := buildTaskListQuery(domain.TaskFilter{UserID: 1, TagID: &tagID})

	if !strings.Contains(query, "JOIN task_tags tt ON tt.task_id = t.id") {
		t.Fatalf("tag filter must join task_tags: %s", query)
	}
	if !strings.Contains(query, "tt.tag_id = $2") {
		t.Fatalf("tag predicate missing: %s", query)
	}
	if len(args) != 2 || args[1].(int64) != 42 {
		t.Fatalf("expected tag arg 42, got %v", args)
	}
}

func TestBuildTaskListQuery_AllFilters(t *testing.T) {
	status := domain.TaskStatusPending
	tagID := int64(3)
	query, args := buildTaskListQuery(domain.TaskFilter{UserID: 9, Status: &status, TagID: &tagID})

	if !strings.Contains(query, "t.status = $2") || !strings.Contains(query, "tt.tag_id = $3") {
		t.Fatalf("placeholders must number in order of args: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
}
