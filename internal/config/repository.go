package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"location-reports/internal/repository/sqlite"
)

// RepositoryOptions maps the database section onto repository options.
func (c *Config) RepositoryOptions(logger *slog.Logger) sqlite.Options {
	return sqlite.Options{
		QueryTimeout: c.Database.QueryTimeout,
		WriteTimeout: c.Database.WriteTimeout,
		MaxOpenConns: c.Database.MaxOpenConns,
		Logger:       logger,
	}
}

// CreateRepository creates the database directory if needed and opens the
// configured repository.
func CreateRepository(ctx context.Context, config *Config, logger *slog.Logger) (*sqlite.SQLiteRepository, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.NewWithOptions(ctx, config.GetDatabasePath(), config.RepositoryOptions(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (*sqlite.SQLiteRepository, error) {
	repo, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
