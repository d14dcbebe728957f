package services

import (
	"log/slog"

	"location-reports/internal/repository/sqlite"
	"location-reports/internal/validation"
)

// NewServiceContainer wires every service to the same repository
func NewServiceContainer(repo sqlite.Repository, validator *validation.Validator, logger *slog.Logger) *ServiceContainer {
	return &ServiceContainer{
		ReportService:   NewReportService(repo, validator, logger),
		RegistryService: NewRegistryService(repo, validator),
	}
}
