// Package server provides the long-running HTTP API over a snapshot file.
//
// The service holds one immutable snapshot and swaps it when the file on
// disk changes. Every request is answered by the pure query and pipeline
// packages, so handlers only take the read lock long enough to copy the
// snapshot pointer.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
	"github.com/theirongolddev/gigdash/internal/query"
	"github.com/theirongolddev/gigdash/internal/source"
	"github.com/theirongolddev/gigdash/internal/store"
)

// Config controls the server runtime behavior.
type Config struct {
	// SnapshotPath is the JSON snapshot to serve. Empty serves the embedded
	// seed, which is never reloaded.
	SnapshotPath string
	Addr         string
	Interval     time.Duration
	EventsBuffer int
	DueSoonDays  int
	TopClients   int

	// DefaultSorts applies when a request has no sort parameter at all.
	DefaultSorts map[model.Kind]query.SortKey

	// Views enables /v1/views and the ?view= parameter when set.
	Views *store.Store

	Logger *log.Logger
	Now    func() time.Time
}

// Delta captures dashboard changes between two loaded snapshots.
type Delta struct {
	TotalProjects     int             `json:"totalProjects"`
	ActiveProjects    int             `json:"activeProjects"`
	CompletedProjects int             `json:"completedProjects"`
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	MonthlyEarnings   decimal.Decimal `json:"monthlyEarnings"`
	TasksDue          int             `json:"tasksDue"`
	TotalClients      int             `json:"totalClients"`
	PendingInvoices   int             `json:"pendingInvoices"`
}

func (d Delta) isZero() bool {
	return d.TotalProjects == 0 &&
		d.ActiveProjects == 0 &&
		d.CompletedProjects == 0 &&
		d.TotalEarnings.IsZero() &&
		d.MonthlyEarnings.IsZero() &&
		d.TasksDue == 0 &&
		d.TotalClients == 0 &&
		d.PendingInvoices == 0
}

// Event is emitted whenever a reload changes the dashboard.
type Event struct {
	ID        int64                `json:"id"`
	Type      string               `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Stats     model.DashboardStats `json:"stats"`
	Delta     Delta                `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt         time.Time            `json:"startedAt"`
	LastReloadAt      time.Time            `json:"lastReloadAt"`
	ReloadIntervalSec int                  `json:"reloadIntervalSec"`
	ReloadCount       int64                `json:"reloadCount"`
	Origin            string               `json:"origin"`
	Records           int                  `json:"records"`
	Stats             model.DashboardStats `json:"stats"`
	LastError         string               `json:"lastError,omitempty"`
	EventCount        int                  `json:"eventCount"`
	SubscriberCount   int                  `json:"subscriberCount"`
}

// Service provides the server runtime and HTTP API.
type Service struct {
	cfg     Config
	log     *log.Logger
	metrics *metrics
	handler http.Handler

	mu           sync.RWMutex
	startedAt    time.Time
	lastReloadAt time.Time
	reloadCount  int64
	lastError    string
	snapshot     *model.Snapshot
	origin       string
	records      int
	modTime      time.Time
	size         int64
	stats        model.DashboardStats
	nextEventID  int64
	events       []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service with its first snapshot loaded. A snapshot that
// fails to load or validate is returned as an error so serve never starts
// on bad data.
func New(cfg Config) (*Service, error) {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8790"
	}
	if cfg.DueSoonDays < 1 {
		cfg.DueSoonDays = pipeline.DefaultDueSoonDays
	}
	if cfg.TopClients < 1 {
		cfg.TopClients = 5
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &Service{
		cfg:       cfg,
		log:       logger,
		metrics:   newMetrics(),
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
	if err := s.reload(); err != nil {
		return nil, err
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler serving the API.
func (s *Service) Handler() http.Handler { return s.handler }

// Run serves HTTP and polls the snapshot file until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Printf("gigdash serving %s on http://%s", s.origin, s.cfg.Addr)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			if s.cfg.SnapshotPath == "" {
				continue
			}
			if err := s.reload(); err != nil {
				s.log.Printf("gigdash reload error: %v", err)
			}
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		}
	}
}

// reload loads the snapshot file if it changed since the last load. A
// failed reload keeps serving the previous snapshot.
func (s *Service) reload() error {
	now := s.cfg.Now()

	var modTime time.Time
	var size int64
	if s.cfg.SnapshotPath != "" {
		info, err := os.Stat(s.cfg.SnapshotPath)
		if err != nil {
			return s.reloadFailed(now, fmt.Errorf("stat snapshot: %w", err))
		}
		modTime, size = info.ModTime(), info.Size()

		s.mu.RLock()
		unchanged := s.snapshot != nil && modTime.Equal(s.modTime) && size == s.size
		s.mu.RUnlock()
		if unchanged {
			s.mu.Lock()
			s.lastReloadAt = now
			s.reloadCount++
			s.mu.Unlock()
			s.metrics.reloads.WithLabelValues("unchanged").Inc()
			return nil
		}
	}

	loaded, err := pipeline.Load(s.cfg.SnapshotPath)
	if err != nil {
		return s.reloadFailed(now, err)
	}
	stats := pipeline.ComputeSnapshotStats(loaded.Snapshot, now, s.dashboardOptions())

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.stats
	prevExists := s.snapshot != nil

	s.snapshot = loaded.Snapshot
	s.origin = loaded.Origin
	s.records = loaded.Records
	s.modTime, s.size = modTime, size
	s.stats = stats
	s.lastReloadAt = now
	s.reloadCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "snapshot", Timestamp: now, Stats: stats}
		publish = true
	} else if delta := diffStats(prev, stats); !delta.isZero() {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: "stats_delta", Timestamp: now, Stats: stats, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	s.metrics.reloads.WithLabelValues("loaded").Inc()
	s.metrics.observeSnapshot(loaded.Snapshot)
	if prevExists {
		s.log.Printf("gigdash reloaded %s (%d records)", loaded.Origin, loaded.Records)
	}
	if publish {
		s.publishEvent(ev)
	}
	return nil
}

func (s *Service) reloadFailed(now time.Time, err error) error {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastReloadAt = now
	s.reloadCount++
	s.mu.Unlock()
	s.metrics.reloads.WithLabelValues("error").Inc()

	var verr *source.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			s.log.Printf("gigdash snapshot: %s", p)
		}
	}
	return err
}

func (s *Service) dashboardOptions() pipeline.DashboardOptions {
	return pipeline.DashboardOptions{DueSoonDays: s.cfg.DueSoonDays}
}

// current returns the snapshot every handler reads from.
func (s *Service) current() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func diffStats(prev, curr model.DashboardStats) Delta {
	return Delta{
		TotalProjects:     curr.TotalProjects - prev.TotalProjects,
		ActiveProjects:    curr.ActiveProjects - prev.ActiveProjects,
		CompletedProjects: curr.CompletedProjects - prev.CompletedProjects,
		TotalEarnings:     curr.TotalEarnings.Sub(prev.TotalEarnings),
		MonthlyEarnings:   curr.MonthlyEarnings.Sub(prev.MonthlyEarnings),
		TasksDue:          curr.TasksDue - prev.TasksDue,
		TotalClients:      curr.TotalClients - prev.TotalClients,
		PendingInvoices:   curr.PendingInvoices - prev.PendingInvoices,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:         s.startedAt,
		LastReloadAt:      s.lastReloadAt,
		ReloadIntervalSec: int(s.cfg.Interval.Seconds()),
		ReloadCount:       s.reloadCount,
		Origin:            s.origin,
		Records:           s.records,
		Stats:             s.stats,
		LastError:         s.lastError,
		EventCount:        len(s.events),
		SubscriberCount:   len(s.subs),
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	s.metrics.subscribers.Set(float64(len(s.subs)))
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
	s.metrics.subscribers.Set(float64(len(s.subs)))
}
