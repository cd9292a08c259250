package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"task_manager/internal/domain"
	"task_manager/internal/repository"
	"task_manager/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// testPool connects to the database named by DATABASE_URL, applies the
// migrations and wipes all rows. Tests are skipped without the env var.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)

	ctx := context.Background()
	if _, err := db.Exec(ctx, `TRUNCATE users, tags, tasks, task_tags RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func createUser(t *testing.T, db *pgxpool.Pool, email string) *domain.User {
	t.Helper()

	hash, err := service.HashPassword("senha123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	u := &domain.User{Name: "Test User", Email: email, PasswordHash: hash}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func seedSystem(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	if err := service.SeedSystemTags(context.Background(), db); err != nil {
		t.Fatalf("seed system tags: %v", err)
	}
}
