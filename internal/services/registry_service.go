package services

import (
	"context"
	"strings"

	"location-reports/internal/domain"
	"location-reports/internal/repository/sqlite"
	"location-reports/internal/validation"
)

// registryServiceImpl implements the RegistryService interface
type registryServiceImpl struct {
	repo              sqlite.Repository
	mapper            *domain.Mapper
	registryValidator *validation.RegistryValidator
}

// NewRegistryService creates a new RegistryService instance
func NewRegistryService(repo sqlite.Repository, validator *validation.Validator) RegistryService {
	return &registryServiceImpl{
		repo:              repo,
		mapper:            domain.NewMapper(),
		registryValidator: validation.NewRegistryValidator(validator),
	}
}

// CreateLocation registers a location. timeZone must be an IANA zone name.
func (s *registryServiceImpl) CreateLocation(ctx context.Context, name, timeZone string) (*domain.Location, error) {
	if err := s.registryValidator.ValidateLocation(name, timeZone); err != nil {
		return nil, err
	}

	dbLocation := s.mapper.Location.ToDatabase(domain.NewLocation(strings.TrimSpace(name), timeZone))
	if err := s.repo.CreateLocation(ctx, &dbLocation); err != nil {
		return nil, err
	}

	location := s.mapper.Location.FromDatabase(dbLocation)
	return &location, nil
}

// GetLocation retrieves a location by its ID
func (s *registryServiceImpl) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	dbLocation, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	location := s.mapper.Location.FromDatabase(*dbLocation)
	return &location, nil
}

// ListLocations returns all locations ordered by name
func (s *registryServiceImpl) ListLocations(ctx context.Context) ([]domain.Location, error) {
	dbLocations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Location.FromDatabaseSlice(dbLocations), nil
}

// CreateAgent registers an agent under a unique call sign
func (s *registryServiceImpl) CreateAgent(ctx context.Context, callSign string) (*domain.Agent, error) {
	if err := s.registryValidator.ValidateAgent(callSign); err != nil {
		return nil, err
	}

	dbAgent := s.mapper.Agent.ToDatabase(domain.NewAgent(strings.TrimSpace(callSign)))
	if err := s.repo.CreateAgent(ctx, &dbAgent); err != nil {
		return nil, err
	}

	agent := s.mapper.Agent.FromDatabase(dbAgent)
	return &agent, nil
}

// GetAgent retrieves an agent by its ID
func (s *registryServiceImpl) GetAgent(ctx context.Context, id int64) (*domain.Agent, error) {
	dbAgent, err := s.repo.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	agent := s.mapper.Agent.FromDatabase(*dbAgent)
	return &agent, nil
}
