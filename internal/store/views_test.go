package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/query"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "views.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveGet(t *testing.T) {
	s := openTestStore(t)
	clock := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	saved, err := s.Save(View{
		Name:   "urgent",
		Kind:   model.KindTask,
		Filter: query.Filter{Priority: "high", Status: "todo"},
		Sort:   query.SortDueDate,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" || !saved.CreatedAt.Equal(clock) {
		t.Fatalf("Save = %+v, want generated ID and CreatedAt", saved)
	}

	got, err := s.Get("urgent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != saved.ID || got.Kind != model.KindTask || got.Filter != saved.Filter || got.Sort != query.SortDueDate {
		t.Fatalf("Get = %+v, want %+v", got, saved)
	}
	if !got.LastUsedAt.IsZero() {
		t.Fatalf("LastUsedAt = %v, want zero", got.LastUsedAt)
	}
}

func TestSave_ReplacesByName(t *testing.T) {
	s := openTestStore(t)
	first, err := s.Save(View{Name: "mine", Kind: model.KindProject, Sort: query.SortBudget})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(View{Name: "mine", Kind: model.KindProject, Filter: query.Filter{Status: "active"}})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("ID changed on update: %s -> %s", first.ID, second.ID)
	}

	got, err := s.Get("mine")
	if err != nil {
		t.Fatal(err)
	}
	if got.Filter.Status != "active" || got.Sort != "" {
		t.Fatalf("Get = %+v, want updated parameters", got)
	}
	if n, _ := s.Count(); n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}

func TestSave_RejectsInvalidParameters(t *testing.T) {
	s := openTestStore(t)
	tests := []struct {
		view View
		want error
	}{
		{View{Name: "a", Kind: model.KindProject, Filter: query.Filter{Priority: "high"}}, query.ErrInvalidFilter},
		{View{Name: "b", Kind: model.KindClient, Sort: query.SortDeadline}, query.ErrInvalidSortKey},
		{View{Name: "c", Kind: "payments"}, query.ErrUnknownKind},
	}
	for _, tt := range tests {
		if _, err := s.Save(tt.view); !errors.Is(err, tt.want) {
			t.Fatalf("Save(%+v) err = %v, want %v", tt.view, err, tt.want)
		}
	}
	if _, err := s.Save(View{Kind: model.KindTask}); err == nil {
		t.Fatal("Save without a name succeeded")
	}
	if n, _ := s.Count(); n != 0 {
		t.Fatalf("Count = %d, want 0", n)
	}
}

func TestListDelete(t *testing.T) {
	s := openTestStore(t)
	for _, v := range []View{
		{Name: "zeta", Kind: model.KindInvoice, Filter: query.Filter{Status: "overdue"}},
		{Name: "alpha", Kind: model.KindInvoice},
		{Name: "beta", Kind: model.KindTask},
	} {
		if _, err := s.Save(v); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].Name != "alpha" || all[2].Name != "zeta" {
		t.Fatalf("List() = %+v", all)
	}
	invoices, err := s.List(model.KindInvoice)
	if err != nil {
		t.Fatal(err)
	}
	if len(invoices) != 2 {
		t.Fatalf("List(invoices) len = %d, want 2", len(invoices))
	}

	if err := s.Delete("alpha"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("alpha"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete err = %v, want ErrNotFound", err)
	}
	if err := s.Delete("alpha"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestMarkUsed(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Save(View{Name: "v", Kind: model.KindActivity}); err != nil {
		t.Fatal(err)
	}
	used := time.Date(2025, time.February, 1, 8, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return used }

	if err := s.MarkUsed("v"); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	got, err := s.Get("v")
	if err != nil {
		t.Fatal(err)
	}
	if !got.LastUsedAt.Equal(used) {
		t.Fatalf("LastUsedAt = %v, want %v", got.LastUsedAt, used)
	}

	// Saving again keeps the usage timestamp.
	if _, err := s.Save(View{Name: "v", Kind: model.KindActivity, Filter: query.Filter{Search: "paid"}}); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get("v"); !got.LastUsedAt.Equal(used) {
		t.Fatalf("LastUsedAt after Save = %v, want %v", got.LastUsedAt, used)
	}
	if err := s.MarkUsed("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MarkUsed(missing) err = %v, want ErrNotFound", err)
	}
}
