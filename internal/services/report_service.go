package services

import (
	"context"
	"fmt"
	"log/slog"

	"location-reports/internal/domain"
	"location-reports/internal/errors"
	"location-reports/internal/logging"
	"location-reports/internal/repository/sqlite"
	"location-reports/internal/search"
	"location-reports/internal/validation"
)

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	repo            sqlite.Repository
	mapper          *domain.Mapper
	reportValidator *validation.ReportValidator
	logger          *slog.Logger
}

// NewReportService creates a new ReportService instance
func NewReportService(repo sqlite.Repository, validator *validation.Validator, logger *slog.Logger) ReportService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &reportServiceImpl{
		repo:            repo,
		mapper:          domain.NewMapper(),
		reportValidator: validation.NewReportValidator(validator),
		logger:          logger,
	}
}

// CreateReport stores a new report. The agent and location must already
// exist. The report time may be given in any zone and is stored in the
// location's zone.
func (s *reportServiceImpl) CreateReport(ctx context.Context, input ReportInput) (*domain.ReportWithTimeZone, error) {
	if err := s.reportValidator.ValidateReportForCreation(input); err != nil {
		return nil, err
	}
	status, _ := domain.ParseStatus(input.Status)

	if _, err := s.repo.GetAgent(ctx, input.AgentID); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewOperationInvalidError("Agent does not exist")
		}
		return nil, err
	}

	dbLocation, err := s.repo.GetLocation(ctx, input.LocationID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewOperationInvalidError("Location does not exist")
		}
		return nil, err
	}

	location := s.mapper.Location.FromDatabase(*dbLocation)
	zone, err := location.Zone()
	if err != nil {
		return nil, errors.NewInternalError(fmt.Sprintf("location %d has unusable time zone %q", location.ID, location.TimeZone), err)
	}

	report := domain.NewReport(input.AgentID, input.LocationID, status, input.ReportTime, input.Body).InZone(zone)
	if !sqlite.IsStorableTime(report.ReportTime) {
		return nil, errors.NewInvalidInputError("reportTime", input.ReportTime,
			fmt.Sprintf("must fall between years 0000 and 9999 in the time zone %s", location.TimeZone))
	}
	dbReport := s.mapper.Report.ToDatabase(report)
	if err := s.repo.CreateReport(ctx, &dbReport); err != nil {
		return nil, err
	}
	report.ID = dbReport.ID

	s.logger.Debug("report created", "report_id", report.ID, "agent_id", report.AgentID, "location_id", report.LocationID)

	return &domain.ReportWithTimeZone{Report: report, TimeZone: location.TimeZone}, nil
}

// GetReport fetches a report with its location's time zone, resolved in the
// same query as the report itself.
func (s *reportServiceImpl) GetReport(ctx context.Context, id int64) (*domain.ReportWithTimeZone, error) {
	if err := s.reportValidator.ValidateReportID(id); err != nil {
		return nil, err
	}

	dbReport, err := s.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	report, err := s.mapper.Report.FromDatabase(*dbReport)
	if err != nil {
		return nil, errors.NewInternalError("stored report could not be read", err)
	}
	return &report, nil
}

// DeleteReport removes a report. Deleting a report that does not exist
// succeeds.
func (s *reportServiceImpl) DeleteReport(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteReport(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Debug("report delete", "report_id", id, "deleted", deleted)
	return nil
}

// SearchReports parses params into criteria and runs the search.
func (s *reportServiceImpl) SearchReports(ctx context.Context, params map[string]string) ([]domain.ReportWithTimeZone, error) {
	criteria, err := search.Parse(params)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, criteria)
}

// Search pushes the SQL half of the criteria to the store and applies the
// in-memory half to what comes back. Any failure discards all results.
func (s *reportServiceImpl) Search(ctx context.Context, criteria []search.Criterion) ([]domain.ReportWithTimeZone, error) {
	dbReports, err := s.repo.SearchReports(ctx, search.Conditions(criteria))
	if err != nil {
		return nil, err
	}

	reports, err := s.mapper.Report.FromDatabaseSlice(dbReports)
	if err != nil {
		return nil, errors.NewInternalError("stored report could not be read", err)
	}

	results := search.Filter(reports, criteria)

	if s.logger.Enabled(ctx, slog.LevelDebug) {
		names := make([]string, len(criteria))
		for i, c := range criteria {
			names[i] = c.Name()
		}
		s.logger.Debug("report search", "criteria", names, "fetched", len(reports), "returned", len(results))
	}

	return results, nil
}
