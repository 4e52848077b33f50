package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/store"
)

// upcomingLimit is the number of deadlines on the dashboard.
const upcomingLimit = 5

// Dashboard is served at /v1/dashboard.
type Dashboard struct {
	Stats               model.DashboardStats `json:"stats"`
	StatusDistribution  []model.StatusShare  `json:"statusDistribution"`
	UpcomingDeadlines   []model.Project      `json:"upcomingDeadlines"`
	UnreadNotifications int                  `json:"unreadNotifications"`
	RecentActivity      []model.Activity     `json:"recentActivity"`
}

// Analytics is served at /v1/analytics.
type Analytics struct {
	ClientRevenue   []model.ClientShare        `json:"clientRevenue"`
	MonthlyEarnings []model.MonthlyEarnings    `json:"monthlyEarnings"`
	Discrepancies   []model.InvoiceDiscrepancy `json:"discrepancies"`
}

func (s *Service) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.log, NoColor: true}))
	r.Use(s.metrics.middleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/analytics", s.handleAnalytics)
		r.Get("/profile", s.handleProfile)
		r.Get("/views", s.handleViews)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
		r.Get("/{kind}/schema", s.handleSchema)
		r.Get("/{kind}", s.handleView)
	})
	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	snap := s.current()
	now := s.cfg.Now()

	recent, err := query.Sort(query.Activities, snap.Activities, query.SortTimestamp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(recent) > upcomingLimit {
		recent = recent[:upcomingLimit]
	}

	writeJSON(w, http.StatusOK, Dashboard{
		Stats:               pipeline.ComputeSnapshotStats(snap, now, s.dashboardOptions()),
		StatusDistribution:  pipeline.StatusDistribution(snap.Projects),
		UpcomingDeadlines:   pipeline.UpcomingDeadlines(snap.Projects, upcomingLimit),
		UnreadNotifications: pipeline.UnreadCount(snap.Notifications),
		RecentActivity:      recent,
	})
}

func (s *Service) handleAnalytics(w http.ResponseWriter, _ *http.Request) {
	snap := s.current()
	writeJSON(w, http.StatusOK, Analytics{
		ClientRevenue:   pipeline.ClientRevenueShare(snap.Clients, s.cfg.TopClients),
		MonthlyEarnings: pipeline.MonthlyEarnings(snap.Invoices),
		Discrepancies:   pipeline.InvoiceDiscrepancies(snap.Invoices),
	})
}

func (s *Service) handleProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.current().User)
}

func (s *Service) handleSchema(w http.ResponseWriter, r *http.Request) {
	info, err := query.Describe(model.Kind(chi.URLParam(r, "kind")))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleView answers /v1/{kind}. A ?view= parameter starts from a saved
// view; explicit search, status, priority and sort parameters override it.
func (s *Service) handleView(w http.ResponseWriter, r *http.Request) {
	kind := model.Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", query.ErrUnknownKind, kind))
		return
	}

	params := r.URL.Query()
	req := pipeline.ViewRequest{Kind: kind}
	hasSort := params.Has("sort")

	if name := params.Get("view"); name != "" {
		v, err := s.savedView(name)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if v.Kind != kind {
			writeError(w, http.StatusBadRequest, fmt.Errorf("saved view %q is for %s, not %s", name, v.Kind, kind))
			return
		}
		req.Filter, req.Sort = v.Filter, v.Sort
		hasSort = true
	}

	if params.Has("search") {
		req.Filter.Search = params.Get("search")
	}
	if params.Has("status") {
		req.Filter.Status = params.Get("status")
	}
	if params.Has("priority") {
		req.Filter.Priority = params.Get("priority")
	}
	if params.Has("sort") {
		req.Sort = query.SortKey(params.Get("sort"))
	} else if !hasSort {
		req.Sort = s.cfg.DefaultSorts[kind]
	}

	result, err := pipeline.RunView(s.current(), req, s.cfg.Now())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Service) savedView(name string) (store.View, error) {
	if s.cfg.Views == nil {
		return store.View{}, fmt.Errorf("%w: %q (saved views disabled)", store.ErrNotFound, name)
	}
	v, err := s.cfg.Views.Get(name)
	if err != nil {
		return store.View{}, err
	}
	if err := s.cfg.Views.MarkUsed(name); err != nil {
		s.log.Printf("gigdash mark view used: %v", err)
	}
	return v, nil
}

func (s *Service) handleViews(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Views == nil {
		writeJSON(w, http.StatusOK, []store.View{})
		return
	}
	kind := model.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", query.ErrUnknownKind, kind))
		return
	}
	views, err := s.cfg.Views.List(kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if views == nil {
		views = []store.View{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current stats immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: s.cfg.Now(),
		Stats:     s.snapshotStatus().Stats,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

// statusFor maps engine and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, query.ErrInvalidFilter), errors.Is(err, query.ErrInvalidSortKey):
		return http.StatusBadRequest
	case errors.Is(err, query.ErrUnknownKind), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
