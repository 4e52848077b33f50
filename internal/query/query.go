// Package query filters and orders record collections for a view.
//
// Each record kind is described by a Schema that fixes its searchable
// fields, its categorical filter dimensions and its sort keys. Queries are
// pure: they never modify the slice they are given.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/theirongolddev/gigdash/internal/model"
)

var (
	// ErrInvalidFilter is returned when a categorical filter names a value
	// the record kind does not have.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidSortKey is returned for a sort key the record kind does not expose.
	ErrInvalidSortKey = errors.New("invalid sort key")
	// ErrUnknownKind is returned for a record kind gigdash does not know.
	ErrUnknownKind = errors.New("unknown record kind")
)

// Filter holds the view parameters that select records. An empty Status or
// Priority is the same as model.FilterAll.
type Filter struct {
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// IsZero reports whether f selects every record.
func (f Filter) IsZero() bool {
	return f.Search == "" && isAll(f.Status) && isAll(f.Priority)
}

// SortKey names an ordering.
type SortKey string

// SortSpec is one ordering a kind supports. Compare orders records as they
// should appear in the output.
type SortSpec[T any] struct {
	Key     SortKey
	Compare func(a, b T) int
}

// Schema describes how records of one kind are searched, filtered and ordered.
type Schema[T any] struct {
	Kind model.Kind

	// Search returns the fields a search term is matched against.
	Search func(T) []string

	// StatusLabel names the status dimension for display ("status" or "type").
	StatusLabel string
	Status      func(T) string
	Statuses    []string

	// Priority is nil for kinds without a priority dimension.
	Priority   func(T) string
	Priorities []string

	// Sorts lists the supported orderings; the first is the default.
	Sorts []SortSpec[T]
}

// SortKeys returns the keys the schema supports, default first.
func (s Schema[T]) SortKeys() []SortKey {
	keys := make([]SortKey, len(s.Sorts))
	for i, spec := range s.Sorts {
		keys[i] = spec.Key
	}
	return keys
}

// DefaultSort returns the schema's default ordering.
func (s Schema[T]) DefaultSort() SortKey {
	if len(s.Sorts) == 0 {
		return ""
	}
	return s.Sorts[0].Key
}

// HasPriority reports whether the kind can be filtered by priority.
func (s Schema[T]) HasPriority() bool { return s.Priority != nil }

// Validate checks f against the schema's categorical values.
func (s Schema[T]) Validate(f Filter) error {
	if !isAll(f.Status) && !slices.Contains(s.Statuses, f.Status) {
		return fmt.Errorf("%w: %s %s %q (want one of all, %s)",
			ErrInvalidFilter, s.Kind, s.StatusLabel, f.Status, strings.Join(s.Statuses, ", "))
	}
	if !isAll(f.Priority) {
		if s.Priority == nil {
			return fmt.Errorf("%w: %s cannot be filtered by priority", ErrInvalidFilter, s.Kind)
		}
		if !slices.Contains(s.Priorities, f.Priority) {
			return fmt.Errorf("%w: %s priority %q (want one of all, %s)",
				ErrInvalidFilter, s.Kind, f.Priority, strings.Join(s.Priorities, ", "))
		}
	}
	return nil
}

// ValidateSort checks that key is empty or one of the schema's sort keys.
func (s Schema[T]) ValidateSort(key SortKey) error {
	if key == "" {
		return nil
	}
	_, err := s.sortSpec(key)
	return err
}

func (s Schema[T]) sortSpec(key SortKey) (SortSpec[T], error) {
	for _, spec := range s.Sorts {
		if spec.Key == key {
			return spec, nil
		}
	}
	keys := make([]string, len(s.Sorts))
	for i, spec := range s.Sorts {
		keys[i] = string(spec.Key)
	}
	return SortSpec[T]{}, fmt.Errorf("%w: %s has no sort %q (want one of %s)",
		ErrInvalidSortKey, s.Kind, key, strings.Join(keys, ", "))
}

// Matches reports whether r passes f: the search term matches at least one
// searchable field and every categorical filter matches.
func Matches[T any](s Schema[T], r T, f Filter) (bool, error) {
	if err := s.Validate(f); err != nil {
		return false, err
	}
	return s.match(r, f, strings.ToLower(f.Search)), nil
}

func (s Schema[T]) match(r T, f Filter, term string) bool {
	if !isAll(f.Status) && s.Status(r) != f.Status {
		return false
	}
	if !isAll(f.Priority) && s.Priority(r) != f.Priority {
		return false
	}
	if term == "" {
		return true
	}
	for _, field := range s.Search(r) {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Select returns the records that match f, in input order.
func Select[T any](s Schema[T], records []T, f Filter) ([]T, error) {
	if err := s.Validate(f); err != nil {
		return nil, err
	}
	term := strings.ToLower(f.Search)
	result := make([]T, 0, len(records))
	for _, r := range records {
		if s.match(r, f, term) {
			result = append(result, r)
		}
	}
	return result, nil
}

// Sort returns a stably ordered copy of records. Records that compare equal
// keep their input order. An empty key keeps input order.
func Sort[T any](s Schema[T], records []T, key SortKey) ([]T, error) {
	out := slices.Clone(records)
	if key == "" {
		return out, nil
	}
	spec, err := s.sortSpec(key)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, spec.Compare)
	return out, nil
}

// FilterAndSort selects the records matching f and orders them by key.
// Both the filter and the key are validated before any work is done.
func FilterAndSort[T any](s Schema[T], records []T, f Filter, key SortKey) ([]T, error) {
	if err := s.ValidateSort(key); err != nil {
		return nil, err
	}
	selected, err := Select(s, records, f)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return selected, nil
	}
	spec, _ := s.sortSpec(key)
	slices.SortStableFunc(selected, spec.Compare)
	return selected, nil
}

func isAll(v string) bool {
	return v == "" || v == model.FilterAll
}
