package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theirongolddev/gigdash/internal/model"
)

// metrics are registered on a per-service registry so several services can
// coexist in one process (tests start many).
type metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	records     *prometheus.GaugeVec
	reloads     *prometheus.CounterVec
	subscribers prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gigdash_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gigdash_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),
		records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gigdash_snapshot_records",
				Help: "Records in the loaded snapshot by kind",
			},
			[]string{"kind"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gigdash_snapshot_reloads_total",
				Help: "Snapshot reload attempts by result",
			},
			[]string{"result"}, // loaded, unchanged, error
		),
		subscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gigdash_stream_subscribers",
				Help: "Current number of event stream subscribers",
			},
		),
	}
	m.registry.MustRegister(
		m.requests, m.duration, m.records, m.reloads, m.subscribers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeSnapshot(snap *model.Snapshot) {
	m.records.WithLabelValues(string(model.KindProject)).Set(float64(len(snap.Projects)))
	m.records.WithLabelValues(string(model.KindClient)).Set(float64(len(snap.Clients)))
	m.records.WithLabelValues(string(model.KindInvoice)).Set(float64(len(snap.Invoices)))
	m.records.WithLabelValues(string(model.KindTask)).Set(float64(len(snap.Tasks)))
	m.records.WithLabelValues(string(model.KindNotification)).Set(float64(len(snap.Notifications)))
	m.records.WithLabelValues(string(model.KindActivity)).Set(float64(len(snap.Activities)))
}

// middleware records request counts and latency by chi route pattern, so
// /v1/projects and /v1/tasks share the /v1/{kind} series.
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
