package service

import (
	"context"

	"task_manager/internal/domain"
	"task_manager/internal/logger"
	"task_manager/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// systemTagSeed is the default tag set shared with every user.
var systemTagSeed = []domain.Tag{
	{Name: "Urgente", Color: "#DC2626"},
	{Name: "Importante", Color: "#EA580C"},
	{Name: "Trabalho", Color: "#2563EB"},
	{Name: "Pessoal", Color: "#7C3AED"},
	{Name: "Estudo", Color: "#059669"},
	{Name: "Lazer", Color: "#DB2777"},
	{Name: "Saúde", Color: "#0891B2"},
	{Name: "Financeiro", Color: "#CA8A04"},
}

// SeedSystemTags inserts the default system tags. Safe to run on every
// boot: the registry's find-or-create primitive makes repeats no-ops.
func SeedSystemTags(ctx context.Context, db *pgxpool.Pool) error {
	tags := repository.NewTagRepository(db)

	for _, seed := range systemTagSeed {
		tag, created, err := tags.FindOrCreateSystem(ctx, seed.Name, seed.Color)
		if err != nil {
			return err
		}
		if created {
			logger.Info("system tag created", "name", tag.Name)
		}
	}
	return nil
}
