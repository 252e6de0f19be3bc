// AngelaMos | 2026
// query.go

package core

import (
	"strconv"
	"strings"
)

// Where accumulates AND-ed predicates with positional Postgres arguments.
// A "$?" in a condition is replaced by the index of the argument it binds,
// so one argument may be referenced several times in the same condition.
type Where struct {
	conditions []string
	args       []any
}

func (w *Where) Add(condition string, arg any) {
	w.args = append(w.args, arg)
	placeholder := "$" + strconv.Itoa(len(w.args))
	w.conditions = append(
		w.conditions,
		strings.ReplaceAll(condition, "$?", placeholder),
	)
}

func (w *Where) AddRaw(condition string) {
	w.conditions = append(w.conditions, condition)
}

func (w *Where) Clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conditions, " AND ")
}

// Args returns a copy so callers can append LIMIT/OFFSET without
// disturbing the count query's arguments.
func (w *Where) Args() []any {
	out := make([]any, len(w.args))
	copy(out, w.args)
	return out
}

// Next is the positional index the next appended argument will take.
func (w *Where) Next() int {
	return len(w.args) + 1
}

func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

type Page struct {
	Limit  int
	Offset int
}

func (p *Page) Normalize(defaultLimit, maxLimit int) {
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Set collects "column = $n" assignments for a partial UPDATE.
type Set struct {
	assignments []string
	args        []any
}

func (s *Set) Add(column string, value any) {
	s.args = append(s.args, value)
	s.assignments = append(
		s.assignments,
		column+" = $"+strconv.Itoa(len(s.args)),
	)
}

func (s *Set) AddRaw(assignment string) {
	s.assignments = append(s.assignments, assignment)
}

func (s *Set) Len() int {
	return len(s.assignments)
}

func (s *Set) Clause() string {
	return strings.Join(s.assignments, ", ")
}

func (s *Set) Args() []any {
	out := make([]any, len(s.args))
	copy(out, s.args)
	return out
}

func (s *Set) Next() int {
	return len(s.args) + 1
}
