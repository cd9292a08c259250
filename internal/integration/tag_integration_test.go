package integration

import (
	"context"
	"errors"
	"testing"

	"task_manager/internal/domain"
	"task_manager/internal/repository"
	"task_manager/internal/service"
)

func TestSeedSystemTags_Idempotent(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	seedSystem(t, db)

	var before int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM tags WHERE user_id IS NULL`).Scan(&before); err != nil {
		t.Fatalf("count: %v", err)
	}
	if before == 0 {
		t.Fatalf("expected system tags after seeding")
	}

	// Second boot must not duplicate anything.
	seedSystem(t, db)

	var after int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM tags WHERE user_id IS NULL`).Scan(&after); err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("re-seeding changed system tag count: %d -> %d", before, after)
	}
}

func TestTagCreate_IdempotentPerUser(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	u := createUser(t, db, "joao@test.com")
	tags := service.NewTagService(db)

	tag1, created, err := tags.Create(ctx, u.ID, "Projeto X", "#FF5733")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created {
		t.Fatalf("first create must report created=true")
	}

	tag2, created, err := tags.Create(ctx, u.ID, "Projeto X", "#00FF00")
	if err != nil {
		t.Fatalf("re-create: %v", err)
	}
	if created {
		t.Fatalf("second create must report created=false")
	}
	if tag1.ID != tag2.ID {
		t.Fatalf("idempotent create returned different ids: %d vs %d", tag1.ID, tag2.ID)
	}
	if tag2.Color != "#FF5733" {
		t.Fatalf("re-create must not overwrite color, got %s", tag2.Color)
	}
}

func TestTagCreate_DefaultColor(t *testing.T) {
	db := testPool(t)
	u := createUser(t, db, "joao@test.com")
	tags := service.NewTagService(db)

	tag, _, err := tags.Create(context.Background(), u.ID, "Sem cor", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tag.Color != domain.DefaultTagColor {
		t.Fatalf("expected default color %s, got %s", domain.DefaultTagColor, tag.Color)
	}
}

func TestTagCreate_SystemNameConflict(t *testing.T) {
	db := testPool(t)
	seedSystem(t, db)
	u := createUser(t, db, "joao@test.com")
	tags := service.NewTagService(db)

	_, _, err := tags.Create(context.Background(), u.ID, "Urgente", "#123456")
	if !errors.Is(err, domain.ErrNameConflict) {
		t.Fatalf("expected ErrNameConflict, got %v", err)
	}
}

func TestTagCreate_SameNameAcrossUsers(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	u1 := createUser(t, db, "u1@test.com")
	u2 := createUser(t, db, "u2@test.com")
	tags := service.NewTagService(db)

	t1, created1, err := tags.Create(ctx, u1.ID, "Viagem", "")
	if err != nil || !created1 {
		t.Fatalf("u1 create: created=%v err=%v", created1, err)
	}
	t2, created2, err := tags.Create(ctx, u2.ID, "Viagem", "")
	if err != nil || !created2 {
		t.Fatalf("u2 create: created=%v err=%v", created2, err)
	}
	if t1.ID == t2.ID {
		t.Fatalf("different users must get distinct tags")
	}
}

func TestTagListVisible_OrderingAndIsolation(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	seedSystem(t, db)
	u1 := createUser(t, db, "u1@test.com")
	u2 := createUser(t, db, "u2@test.com")
	tags := service.NewTagService(db)

	if _, _, err := tags.Create(ctx, u1.ID, "zzz", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := tags.Create(ctx, u1.ID, "aaa", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := tags.Create(ctx, u2.ID, "segredo", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	visible, err := tags.ListVisible(ctx, u1.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	sawPersonal := false
	for _, tag := range visible {
		if tag.Name == "segredo" {
			t.Fatalf("another user's personal tag leaked into the list")
		}
		if tag.IsSystem() {
			if sawPersonal {
				t.Fatalf("system tags must come before personal tags")
			}
		} else {
			sawPersonal = true
		}
	}

	// alphabetical within the personal group
	var personal []string
	for _, tag := range visible {
		if !tag.IsSystem() {
			personal = append(personal, tag.Name)
		}
	}
	if len(personal) != 2 || personal[0] != "aaa" || personal[1] != "zzz" {
		t.Fatalf("personal tags out of order: %v", personal)
	}
}

func TestTagUpdate_RulesAndConflicts(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	seedSystem(t, db)
	u1 := createUser(t, db, "u1@test.com")
	u2 := createUser(t, db, "u2@test.com")
	tags := service.NewTagService(db)

	mine, _, err := tags.Create(ctx, u1.ID, "Casa", "#111111")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := tags.Create(ctx, u1.ID, "Carro", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	// rename onto a system tag name
	name := "Urgente"
	if _, err := tags.Update(ctx, u1.ID, mine.ID, &name, nil); !errors.Is(err, domain.ErrNameConflict) {
		t.Fatalf("expected conflict with system name, got %v", err)
	}

	// rename onto a sibling personal tag name
	name = "Carro"
	if _, err := tags.Update(ctx, u1.ID, mine.ID, &name, nil); !errors.Is(err, domain.ErrNameConflict) {
		t.Fatalf("expected conflict with sibling personal name, got %v", err)
	}

	// recolor only, same name kept (self-comparison excluded)
	color := "#ABCDEF"
	updated, err := tags.Update(ctx, u1.ID, mine.ID, nil, &color)
	if err != nil {
		t.Fatalf("recolor: %v", err)
	}
	if updated.Name != "Casa" || updated.Color != "#ABCDEF" {
		t.Fatalf("unexpected tag after recolor: %+v", updated)
	}

	// self-rename to the same name is a no-op, not a conflict
	name = "Casa"
	if _, err := tags.Update(ctx, u1.ID, mine.ID, &name, nil); err != nil {
		t.Fatalf("self-rename: %v", err)
	}

	// another user's tag
	name = "Roubo"
	if _, err := tags.Update(ctx, u2.ID, mine.ID, &name, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected Forbidden for foreign tag, got %v", err)
	}

	// missing tag
	if _, err := tags.Update(ctx, u1.ID, 999999, &name, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestSystemTag_Protected(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	seedSystem(t, db)
	u := createUser(t, db, "joao@test.com")
	tags := service.NewTagService(db)

	repo := repository.NewTagRepository(db)
	visible, err := repo.ListVisible(ctx, u.ID)
	if err != nil || len(visible) == 0 {
		t.Fatalf("list visible: %v", err)
	}
	system := visible[0]
	if !system.IsSystem() {
		t.Fatalf("expected first visible tag to be a system tag")
	}

	name := "Hacked"
	if _, err := tags.Update(ctx, u.ID, system.ID, &name, nil); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("system tag rename must be Forbidden, got %v", err)
	}
	if err := tags.Delete(ctx, u.ID, system.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("system tag delete must be Forbidden, got %v", err)
	}

	// untouched
	after, err := repo.GetByID(ctx, system.ID)
	if err != nil {
		t.Fatalf("system tag vanished: %v", err)
	}
	if after.Name != system.Name {
		t.Fatalf("system tag was modified: %s -> %s", system.Name, after.Name)
	}
}

func TestTagDelete_CascadesLinksOnly(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()
	u := createUser(t, db, "joao@test.com")
	tags := service.NewTagService(db)
	tasks := service.NewTaskService(db)

	tag, _, err := tags.Create(ctx, u.ID, "Efêmera", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	t1, err := tasks.Create(ctx, u.ID, "Tarefa 1", "", []int64{tag.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	t2, err := tasks.Create(ctx, u.ID, "Tarefa 2", "", []int64{tag.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := tags.Delete(ctx, u.ID, tag.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	for _, id := range []int64{t1.ID, t2.ID} {
		task, err := tasks.Get(ctx, u.ID, id)
		if err != nil {
			t.Fatalf("task %d must survive tag deletion: %v", id, err)
		}
		if len(task.Tags) != 0 {
			t.Fatalf("task %d still references the deleted tag: %+v", id, task.Tags)
		}
	}
}
