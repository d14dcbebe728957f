// Package search turns optional filter values into criteria that are split
// between the SQL store and an in-memory post-filter.
package search

import (
	"fmt"
	"time"
	"unicode"

	"location-reports/internal/domain"
	"location-reports/internal/repository/sqlite"
)

// Filter keys recognised by Parse.
const (
	KeyAgentID      = "agentId"
	KeyLocationID   = "locationId"
	KeyFromTime     = "fromTime"
	KeyToTime       = "toTime"
	KeyDigitsInBody = "digitsInBody"
)

// Bound parameter names. Every SQL criterion owns exactly one.
const (
	paramAgentID    = "agent_id"
	paramLocationID = "location_id"
	paramFromTime   = "from_time"
	paramToTime     = "to_time"
)

// Predicate decides whether a fetched row is kept.
type Predicate func(domain.ReportWithTimeZone) bool

// Always keeps every row.
func Always(domain.ReportWithTimeZone) bool { return true }

// Criterion is one active search filter. Fragment is its SQL half and
// Predicate its in-memory half; a criterion without an in-memory condition
// returns Always.
type Criterion interface {
	sqlite.Condition
	fmt.Stringer
	Predicate() Predicate
	Name() string
}

// AgentIDCriterion matches reports filed by one agent.
type AgentIDCriterion struct {
	AgentID int64
}

func (c AgentIDCriterion) Name() string { return KeyAgentID }

func (c AgentIDCriterion) Fragment() (sqlite.Fragment, bool) {
	return sqlite.Fragment{
		Expr:     "agent_location_report.agent_id = :" + paramAgentID,
		Bindings: map[string]any{paramAgentID: c.AgentID},
	}, true
}

func (c AgentIDCriterion) Predicate() Predicate { return Always }

func (c AgentIDCriterion) String() string {
	return fmt.Sprintf("%s=%d", KeyAgentID, c.AgentID)
}

// LocationIDCriterion matches reports about one location.
type LocationIDCriterion struct {
	LocationID int64
}

func (c LocationIDCriterion) Name() string { return KeyLocationID }

func (c LocationIDCriterion) Fragment() (sqlite.Fragment, bool) {
	return sqlite.Fragment{
		Expr:     "agent_location_report.location_id = :" + paramLocationID,
		Bindings: map[string]any{paramLocationID: c.LocationID},
	}, true
}

func (c LocationIDCriterion) Predicate() Predicate { return Always }

func (c LocationIDCriterion) String() string {
	return fmt.Sprintf("%s=%d", KeyLocationID, c.LocationID)
}

// FromTimeCriterion matches reports made at or after From.
type FromTimeCriterion struct {
	From time.Time
}

func (c FromTimeCriterion) Name() string { return KeyFromTime }

func (c FromTimeCriterion) Fragment() (sqlite.Fragment, bool) {
	return sqlite.Fragment{
		Expr:     "agent_location_report.report_time_utc >= :" + paramFromTime,
		Bindings: map[string]any{paramFromTime: c.From},
	}, true
}

func (c FromTimeCriterion) Predicate() Predicate { return Always }

func (c FromTimeCriterion) String() string {
	return KeyFromTime + "=" + c.From.Format(time.RFC3339Nano)
}

// ToTimeCriterion matches reports made at or before To.
type ToTimeCriterion struct {
	To time.Time
}

func (c ToTimeCriterion) Name() string { return KeyToTime }

func (c ToTimeCriterion) Fragment() (sqlite.Fragment, bool) {
	return sqlite.Fragment{
		Expr:     "agent_location_report.report_time_utc <= :" + paramToTime,
		Bindings: map[string]any{paramToTime: c.To},
	}, true
}

func (c ToTimeCriterion) Predicate() Predicate { return Always }

func (c ToTimeCriterion) String() string {
	return KeyToTime + "=" + c.To.Format(time.RFC3339Nano)
}

// DigitsInBodyCriterion matches reports whose body contains exactly Count
// decimal digits. It has no SQL half.
type DigitsInBodyCriterion struct {
	Count int
}

func (c DigitsInBodyCriterion) Name() string { return KeyDigitsInBody }

func (c DigitsInBodyCriterion) Fragment() (sqlite.Fragment, bool) {
	return sqlite.Fragment{}, false
}

func (c DigitsInBodyCriterion) Predicate() Predicate {
	return func(r domain.ReportWithTimeZone) bool {
		return CountDigits(r.Body) == c.Count
	}
}

func (c DigitsInBodyCriterion) String() string {
	return fmt.Sprintf("%s=%d", KeyDigitsInBody, c.Count)
}

// CountDigits counts the code points in s that Unicode classifies as
// decimal digits.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
