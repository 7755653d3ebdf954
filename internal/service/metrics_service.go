package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess   = "success"
	outcomeError     = "error"
	outcomeInvalid   = "invalid"
	outcomeCancelled = "cancelled"
)

// MetricsService encapsulates Prometheus instrumentation for the console and
// the development backend. A nil *MetricsService is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	staleResponses  *prometheus.CounterVec
	submits         *prometheus.CounterVec
	notifications   *prometheus.CounterVec

	requestCount uint64
	fetchCount   uint64
	staleCount   uint64
}

// MetricsSnapshot is a lightweight summary for the console status line.
type MetricsSnapshot struct {
	RequestsTotal  uint64
	FetchesTotal   uint64
	StaleDiscarded uint64
	Goroutines     int
}

// NewMetricsService registers the console collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collection_fetch_duration_seconds",
		Help:    "Duration of list fetches issued by collection screens",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "outcome"})

	staleResponses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collection_stale_responses_total",
		Help: "List responses dropped because a newer request was issued",
	}, []string{"resource"})

	submits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "form_submits_total",
		Help: "Form submissions by outcome",
	}, []string{"resource", "outcome"})

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Toasts shown by kind",
	}, []string{"kind"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, fetchDuration, staleResponses, submits, notifications, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		fetchDuration:   fetchDuration,
		staleResponses:  staleResponses,
		submits:         submits,
		notifications:   notifications,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records one HTTP exchange, inbound or outbound.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
	atomic.AddUint64(&m.requestCount, 1)
}

// ObserveFetch records an applied list fetch.
func (m *MetricsService) ObserveFetch(resource, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(resource, outcome).Observe(duration.Seconds())
	atomic.AddUint64(&m.fetchCount, 1)
}

// IncStaleResponse counts a dropped out-of-order list response.
func (m *MetricsService) IncStaleResponse(resource string) {
	if m == nil {
		return
	}
	m.staleResponses.WithLabelValues(resource).Inc()
	atomic.AddUint64(&m.staleCount, 1)
}

// IncSubmit counts a form submission attempt by outcome.
func (m *MetricsService) IncSubmit(resource, outcome string) {
	if m == nil {
		return
	}
	m.submits.WithLabelValues(resource, outcome).Inc()
}

// IncNotification counts a toast.
func (m *MetricsService) IncNotification(kind NotificationKind) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(string(kind)).Inc()
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		RequestsTotal:  atomic.LoadUint64(&m.requestCount),
		FetchesTotal:   atomic.LoadUint64(&m.fetchCount),
		StaleDiscarded: atomic.LoadUint64(&m.staleCount),
		Goroutines:     runtime.NumGoroutine(),
	}
}
