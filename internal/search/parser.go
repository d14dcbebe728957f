package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"location-reports/internal/errors"
	"location-reports/internal/repository/sqlite"
)

// dateTimeLayouts are tried in order. Both require an explicit offset.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Parse builds the active criteria from a filter map. Keys may appear in any
// combination; missing or empty keys are skipped and unrecognised keys are
// ignored. The result is always ordered agentId, locationId, fromTime,
// toTime, digitsInBody. A present but malformed value fails the whole parse
// with an invalid input error naming the key.
func Parse(params map[string]string) ([]Criterion, error) {
	var criteria []Criterion

	if raw, ok := lookup(params, KeyAgentID); ok {
		id, err := parseID(KeyAgentID, raw)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, AgentIDCriterion{AgentID: id})
	}

	if raw, ok := lookup(params, KeyLocationID); ok {
		id, err := parseID(KeyLocationID, raw)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, LocationIDCriterion{LocationID: id})
	}

	if raw, ok := lookup(params, KeyFromTime); ok {
		from, err := ParseDateTime(KeyFromTime, raw)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, FromTimeCriterion{From: from})
	}

	if raw, ok := lookup(params, KeyToTime); ok {
		to, err := ParseDateTime(KeyToTime, raw)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, ToTimeCriterion{To: to})
	}

	if raw, ok := lookup(params, KeyDigitsInBody); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.NewInvalidInputError(KeyDigitsInBody, raw, "must be an integer")
		}
		if n < 0 {
			return nil, errors.NewInvalidInputError(KeyDigitsInBody, raw, "must not be negative")
		}
		criteria = append(criteria, DigitsInBodyCriterion{Count: n})
	}

	return criteria, nil
}

// ParseValues is Parse for URL query values, using the first value of each
// key.
func ParseValues(values url.Values) ([]Criterion, error) {
	params := make(map[string]string, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}
	return Parse(params)
}

func lookup(params map[string]string, key string) (string, bool) {
	raw, ok := params[key]
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func parseID(key, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError(key, raw, "must be an integer")
	}
	return id, nil
}

// ParseDateTime parses an ISO-8601 date-time carrying a UTC offset. key
// names the input in the returned error.
func ParseDateTime(key, raw string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			if !sqlite.IsStorableTime(t) {
				return time.Time{}, errors.NewInvalidInputError(key, raw,
					fmt.Sprintf("must fall between years %04d and %04d in UTC", sqlite.MinStorableYear, sqlite.MaxStorableYear))
			}
			return t, nil
		}
	}
	return time.Time{}, errors.NewInvalidInputError(key, raw,
		"must be an ISO-8601 date-time with a UTC offset, e.g. 2024-03-01T10:15:00+01:00")
}
