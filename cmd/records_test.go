package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/gigdash/internal/config"
	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/store"

	"github.com/spf13/cobra"
)

func parsedRequest(t *testing.T, kind model.Kind, args ...string) (pipeline.ViewRequest, error) {
	t.Helper()
	var f viewFlags
	cmd := &cobra.Command{Use: "test"}
	f.bind(cmd, kind == model.KindTask)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return f.request(cmd, kind, config.DefaultConfig())
}

func TestViewFlags_DefaultSortOnlyWhenUnset(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want query.SortKey
	}{
		{"config default", nil, query.SortDeadline},
		{"explicit", []string{"--sort", "budget"}, query.SortBudget},
		{"explicit empty keeps order", []string{"--sort="}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parsedRequest(t, model.KindProject, tt.args...)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if req.Sort != tt.want {
				t.Fatalf("Sort = %q, want %q", req.Sort, tt.want)
			}
		})
	}
}

func TestViewFlags_Filters(t *testing.T) {
	req, err := parsedRequest(t, model.KindTask, "-s", "api", "--status", "todo", "--priority", "high")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	want := query.Filter{Search: "api", Status: "todo", Priority: "high"}
	if req.Filter != want {
		t.Fatalf("Filter = %+v, want %+v", req.Filter, want)
	}
}

func TestViewFlags_SavedViewWithOverride(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	views, err := store.Open(config.ViewsDBPath())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, err = views.Save(store.View{
		Name:   "late",
		Kind:   model.KindInvoice,
		Filter: query.Filter{Status: "overdue", Search: "inv"},
		Sort:   query.SortAmount,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = views.Close()

	req, err := parsedRequest(t, model.KindInvoice, "--view", "late", "--status", "pending")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Filter.Status != "pending" || req.Filter.Search != "inv" {
		t.Fatalf("Filter = %+v, want status override and saved search", req.Filter)
	}
	if req.Sort != query.SortAmount {
		t.Fatalf("Sort = %q, want saved %q", req.Sort, query.SortAmount)
	}

	if _, err := parsedRequest(t, model.KindProject, "--view", "late"); err == nil {
		t.Fatal("expected error applying an invoices view to projects")
	}
	if _, err := parsedRequest(t, model.KindInvoice, "--view", "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveNow(t *testing.T) {
	old := flagNow
	t.Cleanup(func() { flagNow = old })

	flagNow = "2025-01-15"
	now, err := resolveNow()
	if err != nil {
		t.Fatalf("resolveNow: %v", err)
	}
	if got := model.DateOf(now); got.Compare(model.NewDate(2025, time.January, 15)) != 0 {
		t.Fatalf("DateOf(now) = %v, want 2025-01-15", got)
	}

	flagNow = "15/01/2025"
	if _, err := resolveNow(); err == nil {
		t.Fatal("expected error for malformed --now")
	}
}

func TestDefaultSorts(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Views.Clients = ""

	sorts := defaultSorts(cfg)
	if sorts[model.KindProject] != query.SortDeadline {
		t.Fatalf("projects sort = %q, want %q", sorts[model.KindProject], query.SortDeadline)
	}
	if _, ok := sorts[model.KindClient]; ok {
		t.Fatal("empty config sort should leave clients unset")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Landing Page", 20, "Landing Page"},
		{"Mobile App Development", 10, "Mobile Ap…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
