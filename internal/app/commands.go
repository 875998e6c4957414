package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Humanoid-1/Web-backend/internal/config"
	"github.com/Humanoid-1/Web-backend/internal/seed"
	"github.com/Humanoid-1/Web-backend/migrations"
	"github.com/Humanoid-1/Web-backend/pkg/database"
)

// Migrate applies pending schema migrations and exits.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.InfoContext(ctx, "database migrations completed")
	return nil
}

// Seed loads the fixtures file at path into the catalog.
func Seed(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) (seed.Summary, error) {
	fixtures, err := seed.LoadFile(path)
	if err != nil {
		return seed.Summary{}, err
	}

	in, err := connect(ctx, cfg, logger)
	if err != nil {
		return seed.Summary{}, err
	}
	defer in.close(logger)

	cat := newCatalog(cfg, in, logger)
	return seed.Apply(ctx, fixtures, seed.Targets{
		Brands:      cat.brands,
		Laptops:     cat.laptops,
		Accessories: cat.accessories,
		Parts:       cat.parts,
	}, logger)
}
