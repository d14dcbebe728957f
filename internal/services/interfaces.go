package services

import (
	"context"

	"location-reports/internal/domain"
	"location-reports/internal/search"
	"location-reports/internal/validation"
)

// ReportInput is the content of a report to be created.
type ReportInput = validation.ReportInput

// ReportService handles report storage and search
type ReportService interface {
	// Report CRUD operations
	CreateReport(ctx context.Context, input ReportInput) (*domain.ReportWithTimeZone, error)
	GetReport(ctx context.Context, id int64) (*domain.ReportWithTimeZone, error)
	DeleteReport(ctx context.Context, id int64) error

	// Search operations
	SearchReports(ctx context.Context, params map[string]string) ([]domain.ReportWithTimeZone, error)
	Search(ctx context.Context, criteria []search.Criterion) ([]domain.ReportWithTimeZone, error)
}

// RegistryService handles the locations and agents reports refer to
type RegistryService interface {
	CreateLocation(ctx context.Context, name, timeZone string) (*domain.Location, error)
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)

	CreateAgent(ctx context.Context, callSign string) (*domain.Agent, error)
	GetAgent(ctx context.Context, id int64) (*domain.Agent, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ReportService   ReportService
	RegistryService RegistryService
}
