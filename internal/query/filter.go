// Package query narrows a screen's working set by free text and structured
// filters before projection and aggregation.
package query

import (
	"strings"

	"go-factory-console/internal/model"
)

// Query is what a list screen's search bar and filter modal produce. Empty
// fields put no constraint on the result.
type Query struct {
	Text     string `json:"q,omitempty"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
}

// Active reports whether any predicate would apply.
func (q Query) Active() bool {
	return q.needle() != "" || q.Status != "" || q.Category != ""
}

func (q Query) needle() string {
	return strings.ToLower(strings.TrimSpace(q.Text))
}

// Fields tells Filter how to read one entity type. A nil accessor means the
// entity has no such attribute and the matching filter is ignored.
type Fields[T any] struct {
	Search   func(T) []string
	Status   func(T) string
	Category func(T) string
}

// Filter returns the items matching every active predicate of q, in their
// original order. The result is always a fresh slice.
//
// Text matches case-insensitively as a substring of any searchable field.
// Status compares spellings tolerantly ("ATIVO" equals "Active"), category
// compares exactly.
func Filter[T any](items []T, q Query, f Fields[T]) []T {
	out := make([]T, 0, len(items))
	needle := q.needle()
	for _, item := range items {
		if needle != "" && !matchText(f.Search, item, needle) {
			continue
		}
		if q.Status != "" && f.Status != nil && !model.SameStatus(f.Status(item), q.Status) {
			continue
		}
		if q.Category != "" && f.Category != nil && f.Category(item) != q.Category {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchText[T any](search func(T) []string, item T, needle string) bool {
	if search == nil {
		return false
	}
	for _, field := range search(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Count returns how many items satisfy pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}
