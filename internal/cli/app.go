package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"location-reports/internal/config"
	"location-reports/internal/repository/sqlite"
	"location-reports/internal/services"
	"location-reports/internal/validation"
)

// Environment names accepted in REPORTS_ENV.
const (
	Development = "development"
	Testing     = "testing"
	Production  = "production"
)

// App holds the dependencies a command runs against. It owns the
// repository and must be closed.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	repo     *sqlite.SQLiteRepository
	services *services.ServiceContainer
}

// NewApp opens the repository selected by the configured environment and
// wires the services over it.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   cfg,
		logger:   logger,
		repo:     repo,
		services: services.NewServiceContainer(repo, validation.NewValidatorWithConfig(cfg), logger),
	}, nil
}

// Close releases the repository.
func (a *App) Close() error {
	return a.repo.Close()
}

// openRepository uses an in-memory store in the testing environment and the
// configured database file everywhere else.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqlite.SQLiteRepository, error) {
	switch strings.ToLower(cfg.Application.Environment) {
	case Testing:
		repo, err := sqlite.NewWithOptions(ctx, sqlite.MemoryPath, cfg.RepositoryOptions(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize testing database: %w", err)
		}
		return repo, nil
	default:
		return config.CreateRepository(ctx, cfg, logger)
	}
}
