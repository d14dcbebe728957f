package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"location-reports/internal/errors"
)

// Fragment is a boolean SQL expression and the named parameters it
// references. Parameters appear in Expr as :name.
type Fragment struct {
	Expr     string
	Bindings map[string]any
}

// Condition is anything that may narrow a report query. The second return
// is false when the condition has nothing to push into SQL.
type Condition interface {
	Fragment() (Fragment, bool)
}

// Where is a built WHERE expression with its bound arguments.
type Where struct {
	Expr string
	Args []any
}

// Clause renders the WHERE clause, or nothing when Expr is empty.
func (w Where) Clause() string {
	if w.Expr == "" {
		return ""
	}
	return " WHERE " + w.Expr
}

// BuildWhere ANDs together every condition that has a fragment. Values are
// only ever passed as named arguments, never written into the SQL text.
// Two conditions binding the same parameter name is a programming error.
func BuildWhere(conds []Condition) (Where, error) {
	var parts []string
	bindings := make(map[string]any)

	for _, cond := range conds {
		frag, ok := cond.Fragment()
		if !ok || strings.TrimSpace(frag.Expr) == "" {
			continue
		}

		for name, value := range frag.Bindings {
			if _, exists := bindings[name]; exists {
				return Where{}, errors.NewInternalError(
					fmt.Sprintf("query parameter %q bound by more than one condition", name), nil)
			}
			bindings[name] = value
		}
		parts = append(parts, "("+frag.Expr+")")
	}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, sql.Named(name, bindValue(bindings[name])))
	}

	return Where{Expr: strings.Join(parts, " AND "), Args: args}, nil
}

func bindValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return FormatInstantForDB(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return FormatInstantForDB(*t)
	default:
		return v
	}
}
