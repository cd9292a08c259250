package main

import (
	"context"
	"errors"
	"log"
	"os"

	"task_manager/internal/db"
	"task_manager/internal/domain"
	"task_manager/internal/repository"
	"task_manager/internal/service"
)

// Seeds a demo account with a couple of tasks and a personal tag. Handy for
// poking the API by hand.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()

	users := repository.NewUserRepository(pool)

	email := "joao@test.com"
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		log.Printf("user already exists id=%d", u.ID)
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		log.Fatalf("lookup user: %v", err)
	}

	hash, err := service.HashPassword("senha123")
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	u = &domain.User{Name: "João Silva", Email: email, PasswordHash: hash}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create user failed: %v", err)
	}
	log.Printf("created user id=%d email=%s password=senha123", u.ID, u.Email)

	tags := service.NewTagService(pool)
	tag, _, err := tags.Create(ctx, u.ID, "Projeto X", "#9333EA")
	if err != nil {
		log.Fatalf("create tag failed: %v", err)
	}

	tasks := service.NewTaskService(pool)
	if _, err := tasks.Create(ctx, u.ID, "Estudar Go", "Aprofundar em pgx e gin", []int64{tag.ID}); err != nil {
		log.Fatalf("create task failed: %v", err)
	}
	if _, err := tasks.Create(ctx, u.ID, "Fazer compras", "", nil); err != nil {
		log.Fatalf("create task failed: %v", err)
	}

	log.Println("demo data ready")
}
