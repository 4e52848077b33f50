// Package source loads and validates gigdash snapshots.
//
// A snapshot is a single JSON document holding the user profile and every
// record collection. Loading is the only I/O the engine depends on; once a
// snapshot is returned it is treated as immutable.
package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
)

//go:embed seed.json
var seedJSON []byte

// SeedName is reported as the origin of the embedded snapshot.
const SeedName = "embedded seed"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so errors match the document being edited.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Money is compared numerically by tags such as gte=0.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidationError lists every problem found in a snapshot.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid snapshot: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid snapshot: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Load reads and validates the snapshot at path. An empty path loads the
// embedded seed.
func Load(path string) (*model.Snapshot, error) {
	if path == "" {
		return Seed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()

	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Seed returns a fresh copy of the embedded sample snapshot.
func Seed() (*model.Snapshot, error) {
	snap, err := Decode(bytes.NewReader(seedJSON))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SeedName, err)
	}
	return snap, nil
}

// Decode parses a snapshot document and validates it. Unknown fields are
// rejected so a misspelled key is not silently dropped.
func Decode(r io.Reader) (*model.Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var snap model.Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := Validate(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Validate checks field constraints and ID uniqueness within each
// collection. It returns a *ValidationError describing every failure.
func Validate(snap *model.Snapshot) error {
	var problems []string

	if err := validate.Struct(snap); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating snapshot: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	problems = append(problems, duplicateIDs("projects", snap.Projects, func(p model.Project) string { return p.ID })...)
	problems = append(problems, duplicateIDs("clients", snap.Clients, func(c model.Client) string { return c.ID })...)
	problems = append(problems, duplicateIDs("invoices", snap.Invoices, func(i model.Invoice) string { return i.ID })...)
	problems = append(problems, duplicateIDs("tasks", snap.Tasks, func(t model.Task) string { return t.ID })...)
	problems = append(problems, duplicateIDs("notifications", snap.Notifications, func(n model.Notification) string { return n.ID })...)
	problems = append(problems, duplicateIDs("activities", snap.Activities, func(a model.Activity) string { return a.ID })...)

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	// Namespace is "Snapshot.projects[2].status"; drop the root type.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s %q is not one of %s", field, fe.Value(), fe.Param())
	case "email":
		return fmt.Sprintf("%s %q is not an email address", field, fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s fails %s", field, fe.Tag())
}

func duplicateIDs[T any](collection string, records []T, id func(T) string) []string {
	var problems []string
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		key := id(r)
		if key == "" {
			continue
		}
		if seen[key] {
			problems = append(problems, fmt.Sprintf("%s: duplicate id %q", collection, key))
		}
		seen[key] = true
	}
	return problems
}
