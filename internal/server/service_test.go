package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/source"
	"github.com/theirongolddev/gigdash/internal/store"
)

var testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	cfg.Now = func() time.Time { return testNow }
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func get(t *testing.T, s *Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

type viewBody struct {
	Kind  string `json:"kind"`
	Sort  string `json:"sort"`
	Count int    `json:"count"`
	Items []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Title string `json:"title"`
	} `json:"items"`
	Summary map[string]any `json:"summary"`
}

func writeSnapshot(t *testing.T, path string, snap *model.Snapshot, mtime time.Time) {
	t.Helper()
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestDiffStats(t *testing.T) {
	prev := model.DashboardStats{
		TotalProjects:   8,
		ActiveProjects:  3,
		TotalEarnings:   decimal.NewFromInt(47700),
		TasksDue:        2,
		PendingInvoices: 2,
	}
	curr := model.DashboardStats{
		TotalProjects:   9,
		ActiveProjects:  4,
		TotalEarnings:   decimal.NewFromInt(50500),
		TasksDue:        2,
		PendingInvoices: 1,
	}

	delta := diffStats(prev, curr)
	if delta.TotalProjects != 1 {
		t.Fatalf("TotalProjects delta = %d, want 1", delta.TotalProjects)
	}
	if delta.ActiveProjects != 1 {
		t.Fatalf("ActiveProjects delta = %d, want 1", delta.ActiveProjects)
	}
	if !delta.TotalEarnings.Equal(decimal.NewFromInt(2800)) {
		t.Fatalf("TotalEarnings delta = %s, want 2800", delta.TotalEarnings)
	}
	if delta.PendingInvoices != -1 {
		t.Fatalf("PendingInvoices delta = %d, want -1", delta.PendingInvoices)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
	if !diffStats(curr, curr).isZero() {
		t.Fatal("diff of identical stats is not zero")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := newTestService(t, Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 10})
	s.publishEvent(Event{ID: 11})
	s.publishEvent(Event{ID: 12})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 11 || s.events[1].ID != 12 {
		t.Fatalf("events ring contains IDs [%d, %d], want [11, 12]", s.events[0].ID, s.events[1].ID)
	}
}

func TestHealthAndStatus(t *testing.T) {
	s := newTestService(t, Config{})

	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok\n" {
		t.Fatalf("/healthz = %d %q, want 200 ok", rec.Code, rec.Body.String())
	}

	rec := get(t, s, "/v1/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("/v1/status code = %d, want 200", rec.Code)
	}
	st := decode[Status](t, rec)
	if st.Origin != source.SeedName {
		t.Fatalf("Origin = %q, want %q", st.Origin, source.SeedName)
	}
	if st.Records != 40 {
		t.Fatalf("Records = %d, want 40", st.Records)
	}
	if st.EventCount != 1 {
		t.Fatalf("EventCount = %d, want 1 (initial snapshot)", st.EventCount)
	}
}

func TestDashboard(t *testing.T) {
	s := newTestService(t, Config{})

	rec := get(t, s, "/v1/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	d := decode[Dashboard](t, rec)
	if d.Stats.TotalProjects != 8 || d.Stats.CompletedProjects != 2 {
		t.Fatalf("projects = %d/%d completed, want 8/2", d.Stats.TotalProjects, d.Stats.CompletedProjects)
	}
	if d.Stats.TasksDue != 2 {
		t.Fatalf("TasksDue = %d, want 2", d.Stats.TasksDue)
	}
	if !d.Stats.TotalEarnings.Equal(decimal.NewFromInt(47700)) {
		t.Fatalf("TotalEarnings = %s, want 47700", d.Stats.TotalEarnings)
	}
	if d.UnreadNotifications != 3 {
		t.Fatalf("UnreadNotifications = %d, want 3", d.UnreadNotifications)
	}
	if len(d.UpcomingDeadlines) != upcomingLimit || len(d.RecentActivity) != upcomingLimit {
		t.Fatalf("upcoming/recent = %d/%d, want %d each",
			len(d.UpcomingDeadlines), len(d.RecentActivity), upcomingLimit)
	}
	for i := 1; i < len(d.RecentActivity); i++ {
		if d.RecentActivity[i].Timestamp.After(d.RecentActivity[i-1].Timestamp) {
			t.Fatalf("RecentActivity not newest first at %d", i)
		}
	}
}

func TestAnalytics(t *testing.T) {
	s := newTestService(t, Config{TopClients: 3})

	a := decode[Analytics](t, get(t, s, "/v1/analytics"))
	if len(a.ClientRevenue) != 4 {
		t.Fatalf("len(ClientRevenue) = %d, want 4 (top 3 + others)", len(a.ClientRevenue))
	}
	if a.ClientRevenue[0].Company != "StartupXYZ" {
		t.Fatalf("top client = %q, want StartupXYZ", a.ClientRevenue[0].Company)
	}
	if len(a.Discrepancies) != 4 {
		t.Fatalf("len(Discrepancies) = %d, want 4", len(a.Discrepancies))
	}
}

func TestView_OverdueInvoices(t *testing.T) {
	s := newTestService(t, Config{})

	rec := get(t, s, "/v1/invoices?status=overdue")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	v := decode[viewBody](t, rec)
	if v.Count != 1 || len(v.Items) != 1 || v.Items[0].ID != "INV-004" {
		t.Fatalf("items = %+v, want only INV-004", v.Items)
	}
	if got := v.Summary["totalAmount"]; got != "2800" {
		t.Fatalf("summary totalAmount = %v, want 2800", got)
	}
}

func TestView_DefaultSort(t *testing.T) {
	s := newTestService(t, Config{
		DefaultSorts: map[model.Kind]query.SortKey{model.KindProject: query.SortDeadline},
	})

	tests := []struct {
		target string
		first  string
	}{
		{"/v1/projects", "Landing Page"},
		{"/v1/projects?sort=", "E-commerce Website"},
		{"/v1/projects?sort=budget", "CRM System"},
		{"/v1/projects?sort=name", "API Integration"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			v := decode[viewBody](t, get(t, s, tt.target))
			if v.Count != 8 {
				t.Fatalf("count = %d, want 8", v.Count)
			}
			if v.Items[0].Name != tt.first {
				t.Fatalf("first = %q, want %q", v.Items[0].Name, tt.first)
			}
		})
	}
}

func TestView_Errors(t *testing.T) {
	s := newTestService(t, Config{})

	tests := []struct {
		target string
		want   int
	}{
		{"/v1/projects?sort=popularity", http.StatusBadRequest},
		{"/v1/projects?status=archived", http.StatusBadRequest},
		{"/v1/clients?priority=high", http.StatusBadRequest},
		{"/v1/widgets", http.StatusNotFound},
		{"/v1/widgets/schema", http.StatusNotFound},
		{"/v1/tasks?view=missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.want {
				t.Fatalf("code = %d, want %d", rec.Code, tt.want)
			}
			body := decode[map[string]string](t, rec)
			if body["error"] == "" {
				t.Fatal("error body missing message")
			}
		})
	}
}

func TestSchema(t *testing.T) {
	s := newTestService(t, Config{})

	info := decode[query.Info](t, get(t, s, "/v1/tasks/schema"))
	if info.Kind != model.KindTask {
		t.Fatalf("Kind = %q, want tasks", info.Kind)
	}
	if len(info.Priorities) != 3 {
		t.Fatalf("Priorities = %v, want 3 values", info.Priorities)
	}
}

func TestView_SavedView(t *testing.T) {
	views, err := store.Open(filepath.Join(t.TempDir(), "views.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = views.Close() })

	if _, err := views.Save(store.View{
		Name:   "urgent",
		Kind:   model.KindTask,
		Filter: query.Filter{Priority: "high", Status: "todo"},
		Sort:   query.SortDueDate,
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s := newTestService(t, Config{Views: views})

	v := decode[viewBody](t, get(t, s, "/v1/tasks?view=urgent"))
	if v.Count != 1 || v.Items[0].Title != "Implement User Authentication" {
		t.Fatalf("items = %+v, want only Implement User Authentication", v.Items)
	}
	if v.Sort != string(query.SortDueDate) {
		t.Fatalf("sort = %q, want dueDate", v.Sort)
	}

	// Explicit parameters override the saved ones.
	v = decode[viewBody](t, get(t, s, "/v1/tasks?view=urgent&status=in-progress"))
	if v.Count != 3 {
		t.Fatalf("count = %d, want 3 high in-progress tasks", v.Count)
	}

	if rec := get(t, s, "/v1/projects?view=urgent"); rec.Code != http.StatusBadRequest {
		t.Fatalf("view for another kind: code = %d, want 400", rec.Code)
	}

	saved, err := views.Get("urgent")
	if err != nil {
		t.Fatal(err)
	}
	if saved.LastUsedAt.IsZero() {
		t.Fatal("LastUsedAt not set after serving the view")
	}

	list := decode[[]store.View](t, get(t, s, "/v1/views?kind=tasks"))
	if len(list) != 1 || list[0].Name != "urgent" {
		t.Fatalf("views = %+v, want [urgent]", list)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestService(t, Config{})
	get(t, s, "/v1/projects")
	get(t, s, "/v1/tasks?sort=bogus")

	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics code = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`gigdash_http_requests_total{method="GET",route="/v1/{kind}",status="200"} 1`,
		`gigdash_http_requests_total{method="GET",route="/v1/{kind}",status="400"} 1`,
		`gigdash_snapshot_records{kind="projects"} 8`,
		`gigdash_snapshot_reloads_total{result="loaded"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestReload(t *testing.T) {
	snap, err := source.Seed()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.json")
	mtime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	writeSnapshot(t, path, snap, mtime)

	s := newTestService(t, Config{SnapshotPath: path})

	// Same file: nothing published.
	if err := s.reload(); err != nil {
		t.Fatalf("reload unchanged: %v", err)
	}
	if n := len(decode[[]Event](t, get(t, s, "/v1/events"))); n != 1 {
		t.Fatalf("events after unchanged reload = %d, want 1", n)
	}

	snap.Projects = snap.Projects[1:]
	writeSnapshot(t, path, snap, mtime.Add(time.Minute))
	if err := s.reload(); err != nil {
		t.Fatalf("reload changed: %v", err)
	}

	events := decode[[]Event](t, get(t, s, "/v1/events"))
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	last := events[1]
	if last.Type != "stats_delta" {
		t.Fatalf("event type = %q, want stats_delta", last.Type)
	}
	if last.Delta.TotalProjects != -1 || last.Delta.ActiveProjects != -1 {
		t.Fatalf("delta = %+v, want one fewer active project", last.Delta)
	}

	// A broken file keeps the previous snapshot.
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime.Add(2*time.Minute), mtime.Add(2*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := s.reload(); err == nil {
		t.Fatal("reload of malformed snapshot succeeded")
	}
	st := s.snapshotStatus()
	if st.LastError == "" {
		t.Fatal("LastError not recorded")
	}
	if v := decode[viewBody](t, get(t, s, "/v1/projects")); v.Count != 7 {
		t.Fatalf("projects after failed reload = %d, want 7", v.Count)
	}
}

func TestNew_InvalidSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(`{"projects": [{"id": "1"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(Config{SnapshotPath: path}); err == nil {
		t.Fatal("New accepted an invalid snapshot")
	}
}
