package search

import (
	"location-reports/internal/domain"
	"location-reports/internal/repository/sqlite"
)

// All is the conjunction of preds. With no predicates it keeps every row.
func All(preds ...Predicate) Predicate {
	if len(preds) == 0 {
		return Always
	}
	return func(r domain.ReportWithTimeZone) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Predicates collects the in-memory half of every criterion.
func Predicates(criteria []Criterion) []Predicate {
	preds := make([]Predicate, 0, len(criteria))
	for _, c := range criteria {
		if p := c.Predicate(); p != nil {
			preds = append(preds, p)
		}
	}
	return preds
}

// Filter keeps the rows that satisfy every criterion's predicate, in their
// original order.
func Filter(rows []domain.ReportWithTimeZone, criteria []Criterion) []domain.ReportWithTimeZone {
	keep := All(Predicates(criteria)...)

	kept := make([]domain.ReportWithTimeZone, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Conditions exposes criteria to the store as SQL conditions.
func Conditions(criteria []Criterion) []sqlite.Condition {
	conds := make([]sqlite.Condition, len(criteria))
	for i, c := range criteria {
		conds[i] = c
	}
	return conds
}
