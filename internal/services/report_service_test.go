package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"location-reports/internal/domain"
	"location-reports/internal/errors"
	"location-reports/internal/repository/sqlite"
	"location-reports/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	repo     *sqlite.SQLiteRepository
	reports  ReportService
	registry RegistryService
	london   *domain.Location
	tokyo    *domain.Location
	kestrel  *domain.Agent
	heron    *domain.Agent
}

func setupReportService(t *testing.T) *testEnv {
	repo, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	container := NewServiceContainer(repo, nil, nil)
	env := &testEnv{repo: repo, reports: container.ReportService, registry: container.RegistryService}

	ctx := context.Background()
	env.london, err = env.registry.CreateLocation(ctx, "London", "Europe/London")
	require.NoError(t, err)
	env.tokyo, err = env.registry.CreateLocation(ctx, "Tokyo", "Asia/Tokyo")
	require.NoError(t, err)
	env.kestrel, err = env.registry.CreateAgent(ctx, "KESTREL")
	require.NoError(t, err)
	env.heron, err = env.registry.CreateAgent(ctx, "HERON")
	require.NoError(t, err)

	return env
}

func (env *testEnv) create(t *testing.T, agent *domain.Agent, location *domain.Location, at time.Time, body string) *domain.ReportWithTimeZone {
	t.Helper()
	report, err := env.reports.CreateReport(context.Background(), ReportInput{
		AgentID:    agent.ID,
		LocationID: location.ID,
		Status:     "GREEN",
		ReportTime: at,
		Body:       body,
	})
	require.NoError(t, err)
	return report
}

func TestReportService_CreateReport(t *testing.T) {
	env := setupReportService(t)
	ctx := context.Background()

	// 10:00 in New York on a summer day is 15:00 in London.
	newYork := time.FixedZone("EDT", -4*3600)
	input := ReportInput{
		AgentID:    env.kestrel.ID,
		LocationID: env.london.ID,
		Status:     "amber",
		ReportTime: time.Date(2024, 6, 1, 10, 0, 0, 0, newYork),
		Body:       "convoy of 4",
	}

	created, err := env.reports.CreateReport(ctx, input)
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))
	assert.Equal(t, domain.StatusAmber, created.Status)
	assert.Equal(t, "Europe/London", created.TimeZone)
	assert.Equal(t, "Europe/London", created.ReportTime.Location().String())
	assert.Equal(t, 15, created.ReportTime.Hour())
	assert.True(t, input.ReportTime.Equal(created.ReportTime))

	// Stored as the London wall clock.
	dbReport, err := env.repo.GetReport(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T15:00:00.000000000", sqlite.FormatTimeForDB(dbReport.ReportTime))
	assert.Equal(t, "2024-06-01T14:00:00.000000000", sqlite.FormatTimeForDB(dbReport.ReportTimeUTC))
}

func TestReportService_CreateReport_Errors(t *testing.T) {
	env := setupReportService(t)

	valid := func() ReportInput {
		return ReportInput{
			AgentID:    env.kestrel.ID,
			LocationID: env.london.ID,
			Status:     "GREEN",
			ReportTime: time.Now(),
		}
	}

	tests := []struct {
		name         string
		mutate       func(*ReportInput)
		expectedType errors.ErrorType
		message      string
	}{
		{"Report id supplied", func(in *ReportInput) { in.ReportID = 12 }, errors.ErrorTypeValidation, "reportId"},
		{"Unknown status", func(in *ReportInput) { in.Status = "BLUE" }, errors.ErrorTypeValidation, "status"},
		{"Missing time", func(in *ReportInput) { in.ReportTime = time.Time{} }, errors.ErrorTypeValidation, "reportTime"},
		{"Agent does not exist", func(in *ReportInput) { in.AgentID = 999 }, errors.ErrorTypeOperationInvalid, "Agent does not exist"},
		{"Location does not exist", func(in *ReportInput) { in.LocationID = 999 }, errors.ErrorTypeOperationInvalid, "Location does not exist"},
		{"Time past year 9999 in UTC", func(in *ReportInput) {
			in.ReportTime = time.Date(9999, 12, 31, 23, 30, 0, 0, time.FixedZone("", -5*3600))
		}, errors.ErrorTypeValidation, "reportTime"},
		{"Time past year 9999 in Tokyo", func(in *ReportInput) {
			in.LocationID = env.tokyo.ID
			in.ReportTime = time.Date(9999, 12, 31, 20, 0, 0, 0, time.UTC)
		}, errors.ErrorTypeInvalidInput, "reportTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid()
			tt.mutate(&input)

			result, err := env.reports.CreateReport(context.Background(), input)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.IsErrorType(err, tt.expectedType), "got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	all, err := env.reports.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReportService_GetReport_RoundTrip(t *testing.T) {
	env := setupReportService(t)

	at := time.Date(2024, 11, 3, 1, 30, 0, 250, time.UTC)
	created := env.create(t, env.heron, env.tokyo, at, "night shift 0300")

	fetched, err := env.reports.GetReport(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.AgentID, fetched.AgentID)
	assert.Equal(t, created.LocationID, fetched.LocationID)
	assert.Equal(t, created.Status, fetched.Status)
	assert.Equal(t, created.Body, fetched.Body)
	assert.Equal(t, "Asia/Tokyo", fetched.TimeZone)
	assert.True(t, at.Equal(fetched.ReportTime))
	assert.Equal(t, created.ReportTime.Format(time.RFC3339Nano), fetched.ReportTime.Format(time.RFC3339Nano))
}

func TestReportService_GetReport_Errors(t *testing.T) {
	env := setupReportService(t)

	_, err := env.reports.GetReport(context.Background(), 404)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	_, err = env.reports.GetReport(context.Background(), 0)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestReportService_DeleteReport(t *testing.T) {
	env := setupReportService(t)
	ctx := context.Background()

	created := env.create(t, env.kestrel, env.london, time.Now(), "")

	require.NoError(t, env.reports.DeleteReport(ctx, created.ID))
	_, err := env.reports.GetReport(ctx, created.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	// Absent reports delete without error.
	assert.NoError(t, env.reports.DeleteReport(ctx, created.ID))
	assert.NoError(t, env.reports.DeleteReport(ctx, 12345))
}

func TestReportService_SearchReports(t *testing.T) {
	env := setupReportService(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r1 := env.create(t, env.kestrel, env.london, base, "a1b2c3")
	r2 := env.create(t, env.kestrel, env.tokyo, base.Add(time.Hour), "a1b2")
	r3 := env.create(t, env.heron, env.london, base.Add(2*time.Hour), "")
	r4 := env.create(t, env.heron, env.tokyo, base.Add(3*time.Hour), "x9y8z7")

	id := func(v int64) string { return strconv.FormatInt(v, 10) }

	tests := []struct {
		name     string
		params   map[string]string
		expected []int64
	}{
		{"No filters", map[string]string{}, []int64{r1.ID, r2.ID, r3.ID, r4.ID}},
		{"By agent", map[string]string{"agentId": id(env.kestrel.ID)}, []int64{r1.ID, r2.ID}},
		{"By location", map[string]string{"locationId": id(env.tokyo.ID)}, []int64{r2.ID, r4.ID}},
		{"Three digits", map[string]string{"digitsInBody": "3"}, []int64{r1.ID, r4.ID}},
		{"Zero digits", map[string]string{"digitsInBody": "0"}, []int64{r3.ID}},
		{"Agent and digits", map[string]string{"agentId": id(env.kestrel.ID), "digitsInBody": "2"}, []int64{r2.ID}},
		{"Unknown agent", map[string]string{"agentId": "0"}, []int64{}},
		{"From is inclusive", map[string]string{"fromTime": "2024-06-01T13:00:00Z"}, []int64{r2.ID, r3.ID, r4.ID}},
		{"To is inclusive", map[string]string{"toTime": "2024-06-01T13:00:00Z"}, []int64{r1.ID, r2.ID}},
		{"From one nanosecond late", map[string]string{"fromTime": "2024-06-01T13:00:00.000000001Z"}, []int64{r3.ID, r4.ID}},
		{"To one nanosecond early", map[string]string{"toTime": "2024-06-01T12:59:59.999999999Z"}, []int64{r1.ID}},
		{"Range in another offset", map[string]string{
			"fromTime": "2024-06-01T14:00+01:00",
			"toTime":   "2024-06-01T23:00+09:00",
		}, []int64{r2.ID, r3.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := env.reports.SearchReports(context.Background(), tt.params)
			require.NoError(t, err)

			ids := make([]int64, len(results))
			for i, r := range results {
				ids[i] = r.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestReportService_SearchReports_ParseError(t *testing.T) {
	env := setupReportService(t)

	_, err := env.reports.SearchReports(context.Background(), map[string]string{"agentId": "x"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Contains(t, err.Error(), "agentId")
}

// The final result must equal {rows matching SQL} ∩ {rows matching every
// predicate}, in store order.
func TestReportService_SearchReports_OutOfRangeTime(t *testing.T) {
	env := setupReportService(t)
	ctx := context.Background()
	env.create(t, env.kestrel, env.london, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), "")

	results, err := env.reports.SearchReports(ctx, map[string]string{"fromTime": "9999-12-31T23:30:00-05:00"})
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Contains(t, err.Error(), "fromTime")

	results, err = env.reports.SearchReports(ctx, map[string]string{"fromTime": "9999-12-31T23:59:59Z"})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = env.reports.SearchReports(ctx, map[string]string{"agentId": strconv.FormatInt(env.kestrel.ID, 10)})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestReportService_Search_IsIntersectionOfBothHalves(t *testing.T) {
	env := setupReportService(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	agents := []*domain.Agent{env.kestrel, env.heron}
	locations := []*domain.Location{env.london, env.tokyo}
	var all []*domain.ReportWithTimeZone
	for i := 0; i < 24; i++ {
		body := fmt.Sprintf("obs %d", i*7)
		all = append(all, env.create(t, agents[i%2], locations[(i/2)%2], base.Add(time.Duration(i)*time.Hour), body))
	}

	from := base.Add(5 * time.Hour)
	to := base.Add(17 * time.Hour)
	criteriaSets := [][]search.Criterion{
		nil,
		{search.DigitsInBodyCriterion{Count: 2}},
		{search.AgentIDCriterion{AgentID: env.heron.ID}, search.DigitsInBodyCriterion{Count: 2}},
		{search.FromTimeCriterion{From: from}, search.ToTimeCriterion{To: to}, search.DigitsInBodyCriterion{Count: 3}},
		{search.DigitsInBodyCriterion{Count: 1}, search.LocationIDCriterion{LocationID: env.tokyo.ID}},
	}

	matches := func(r *domain.ReportWithTimeZone, c search.Criterion) bool {
		switch v := c.(type) {
		case search.AgentIDCriterion:
			return r.AgentID == v.AgentID
		case search.LocationIDCriterion:
			return r.LocationID == v.LocationID
		case search.FromTimeCriterion:
			return !r.ReportTime.Before(v.From)
		case search.ToTimeCriterion:
			return !r.ReportTime.After(v.To)
		case search.DigitsInBodyCriterion:
			return search.CountDigits(r.Body) == v.Count
		}
		return false
	}

	for i, criteria := range criteriaSets {
		t.Run(fmt.Sprintf("set %d", i), func(t *testing.T) {
			expected := []int64{}
			for _, r := range all {
				keep := true
				for _, c := range criteria {
					keep = keep && matches(r, c)
				}
				if keep {
					expected = append(expected, r.ID)
				}
			}

			results, err := env.reports.Search(context.Background(), criteria)
			require.NoError(t, err)
			got := make([]int64, len(results))
			for j, r := range results {
				got[j] = r.ID
			}
			assert.Equal(t, expected, got)
		})
	}
}

// failingRepository fails searches and passes everything else through.
type failingRepository struct {
	sqlite.Repository
	err error
}

func (f *failingRepository) SearchReports(context.Context, []sqlite.Condition) ([]*sqlite.ReportWithTimeZone, error) {
	return nil, f.err
}

func TestReportService_Search_StoreFailure(t *testing.T) {
	env := setupReportService(t)
	env.create(t, env.kestrel, env.london, time.Now(), "")

	storeErr := errors.NewDatabaseError("query reports", stderrors.New("disk I/O error"))
	service := NewReportService(&failingRepository{Repository: env.repo, err: storeErr}, nil, nil)

	results, err := service.SearchReports(context.Background(), map[string]string{})
	assert.Nil(t, results)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

func TestReportService_Search_UnreadableRowFailsWholeSearch(t *testing.T) {
	env := setupReportService(t)
	ctx := context.Background()
	env.create(t, env.kestrel, env.london, time.Now(), "fine")

	// A location written behind the service's back with a zone that no
	// longer loads.
	broken := &sqlite.Location{Name: "Broken", TimeZone: "Gone/Away"}
	require.NoError(t, env.repo.CreateLocation(ctx, broken))
	now := time.Now().UTC()
	require.NoError(t, env.repo.CreateReport(ctx, &sqlite.Report{
		LocationID: broken.ID, AgentID: env.kestrel.ID, Status: "RED", ReportTime: now, ReportTimeUTC: now,
	}))

	results, err := env.reports.Search(ctx, nil)
	assert.Nil(t, results)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInternal))
}
