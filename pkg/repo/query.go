package repo

import (
	"fmt"
	"strings"
)

// Placeholder renders the n-th (1-based) bind parameter.
type Placeholder func(n int) string

func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

func Question(int) string { return "?" }

// Where accumulates comparison predicates joined with AND.
type Where struct {
	placeholder Placeholder
	conditions  []string
	args        []any
}

func NewWhere(placeholder Placeholder) *Where {
	return &Where{placeholder: placeholder}
}

func (w *Where) Eq(column string, value any) *Where {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s = %s", column, w.placeholder(len(w.args))))
	return w
}

func (w *Where) NotEq(column string, value any) *Where {
	w.args = append(w.args, value)
	w.conditions = append(w.conditions, fmt.Sprintf("%s <> %s", column, w.placeholder(len(w.args))))
	return w
}

func (w *Where) Args() []any {
	return w.args
}

// String returns the WHERE clause, or an empty string when no predicate was added.
func (w *Where) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

func Join(expressions ...string) string {
	parts := make([]string, 0, len(expressions))
	for _, e := range expressions {
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, " ")
}

func Exists(query string) string {
	return "SELECT EXISTS(" + query + ")"
}
