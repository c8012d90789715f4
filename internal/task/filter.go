package task

import (
	"fmt"
	"strings"
)

// Filter is the active view predicate over a task list.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// filterAliases maps accepted spellings to their canonical filter.
var filterAliases = map[string]Filter{
	"":            FilterAll,
	"all":         FilterAll,
	"todas":       FilterAll,
	"pending":     FilterPending,
	"open":        FilterPending,
	"pendientes":  FilterPending,
	"completed":   FilterCompleted,
	"done":        FilterCompleted,
	"completadas": FilterCompleted,
}

// ParseFilter resolves a user-supplied filter name. Matching is
// case-insensitive and an empty string selects FilterAll.
func ParseFilter(s string) (Filter, error) {
	f, ok := filterAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown filter %q: must be all, pending, or completed", s)
	}
	return f, nil
}

// Matches reports whether t is visible under the filter.
// Unknown filters behave like FilterAll.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the tasks visible under the filter, preserving order.
// The result never aliases the input slice.
func (f Filter) Apply(tasks []Task) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}

// Next returns the filter after f in display order, wrapping around.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Counts holds aggregate counters over a full task list.
type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// Count computes counters over every task regardless of any filter.
func Count(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		}
	}
	c.Pending = c.Total - c.Completed
	return c
}
