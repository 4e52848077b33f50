package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/gigdash/internal/model"
)

func TestSeed(t *testing.T) {
	snap, err := Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	counts := map[string]int{
		"projects":      len(snap.Projects),
		"clients":       len(snap.Clients),
		"invoices":      len(snap.Invoices),
		"tasks":         len(snap.Tasks),
		"notifications": len(snap.Notifications),
		"activities":    len(snap.Activities),
	}
	want := map[string]int{
		"projects": 8, "clients": 7, "invoices": 5,
		"tasks": 8, "notifications": 5, "activities": 7,
	}
	for k, n := range want {
		if counts[k] != n {
			t.Fatalf("len(%s) = %d, want %d", k, counts[k], n)
		}
	}
	if snap.User.Name != "Ahmed Hegazy" {
		t.Fatalf("User.Name = %q, want Ahmed Hegazy", snap.User.Name)
	}
	if got := snap.Tasks[2].CompletedDate; got == nil || got.String() != "2025-01-14" {
		t.Fatalf("Tasks[2].CompletedDate = %v, want 2025-01-14", got)
	}
}

func TestSeed_ReturnsIndependentCopies(t *testing.T) {
	a, err := Seed()
	if err != nil {
		t.Fatal(err)
	}
	a.Projects[0].Name = "changed"

	b, err := Seed()
	if err != nil {
		t.Fatal(err)
	}
	if b.Projects[0].Name == "changed" {
		t.Fatal("Seed shares state between calls")
	}
}

func TestLoad_EmptyPathIsSeed(t *testing.T) {
	snap, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if len(snap.Projects) != 8 {
		t.Fatalf("len(Projects) = %d, want 8", len(snap.Projects))
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.json")
	doc := `{
  "user": {"name": "Sam", "email": "sam@example.com"},
  "projects": [{"id": "p1", "name": "Site", "client": "Acme", "status": "active",
    "deadline": "2025-03-01", "progress": 10, "budget": 1200.50, "startDate": "2025-01-01"}]
}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := snap.Projects[0].Budget.String(); got != "1200.5" {
		t.Fatalf("Budget = %s, want 1200.5", got)
	}
	if got := snap.Projects[0].Deadline.String(); got != "2025-03-01" {
		t.Fatalf("Deadline = %s, want 2025-03-01", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load err = %v, want os.ErrNotExist", err)
	}
}

func TestDecode_Rejects(t *testing.T) {
	const user = `"user": {"name": "Sam", "email": "sam@example.com"}`
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "bad status",
			doc:     `{` + user + `, "tasks": [{"id": "1", "title": "x", "priority": "high", "status": "done", "dueDate": "2025-01-01", "createdDate": "2025-01-01"}]}`,
			wantMsg: `tasks[0].status "done" is not one of`,
		},
		{
			name:    "missing deadline",
			doc:     `{` + user + `, "projects": [{"id": "1", "name": "x", "client": "c", "status": "active", "startDate": "2025-01-01"}]}`,
			wantMsg: "projects[0].deadline is required",
		},
		{
			name:    "progress out of range",
			doc:     `{` + user + `, "projects": [{"id": "1", "name": "x", "client": "c", "status": "active", "deadline": "2025-01-01", "startDate": "2025-01-01", "progress": 140}]}`,
			wantMsg: "projects[0].progress must be at most 100",
		},
		{
			name:    "negative budget",
			doc:     `{` + user + `, "projects": [{"id": "1", "name": "x", "client": "c", "status": "active", "deadline": "2025-01-01", "startDate": "2025-01-01", "budget": -5}]}`,
			wantMsg: "projects[0].budget must be at least 0",
		},
		{
			name:    "duplicate ids",
			doc:     `{` + user + `, "activities": [{"id": "1", "type": "task", "message": "a", "timestamp": "2025-01-01T00:00:00Z"}, {"id": "1", "type": "task", "message": "b", "timestamp": "2025-01-01T00:00:00Z"}]}`,
			wantMsg: `activities: duplicate id "1"`,
		},
		{
			name:    "missing user",
			doc:     `{"projects": []}`,
			wantMsg: "user is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Decode err = %v, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("Decode err = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestDecode_MalformedInput(t *testing.T) {
	tests := []string{
		`{"user": {"name": "Sam", "email": "sam@example.com"}, "projects": [{"deadline": "15/01/2025"}]}`,
		`{"user": {"name": "Sam", "email": "sam@example.com"}, "extra": true}`,
		`not json`,
	}
	for _, doc := range tests {
		_, err := Decode(strings.NewReader(doc))
		if err == nil {
			t.Fatalf("Decode(%q) succeeded, want error", doc)
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			t.Fatalf("Decode(%q) = validation error %v, want decode error", doc, err)
		}
	}
}

func TestValidate_ReportsDuplicateIDs(t *testing.T) {
	snap, err := Seed()
	if err != nil {
		t.Fatal(err)
	}
	snap.Invoices = append(snap.Invoices, model.Invoice{ID: "INV-001"})
	err = Validate(snap)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate err = %v, want *ValidationError", err)
	}
	if !strings.Contains(err.Error(), `invoices: duplicate id "INV-001"`) {
		t.Fatalf("Validate err = %q, missing duplicate id", err)
	}
}
