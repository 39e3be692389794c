package metrics

import (
	"net/http"
	"strconv"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "points_ledger"

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// LedgerMetrics collects ledger and HTTP metrics on a private registry.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	registry     *prometheus.Registry
	entries      *prometheus.CounterVec
	points       *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	requests     *prometheus.CounterVec
	durations    *prometheus.HistogramVec
}

// New builds the collectors and registers them.
func New() *LedgerMetrics {
	registry := prometheus.NewRegistry()
	m := &LedgerMetrics{
		registry: registry,
		entries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_committed_total",
			Help:      "Ledger entries committed by kind.",
		}, []string{"kind"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_moved_total",
			Help:      "Points moved by committed entries, by kind.",
		}, []string{"kind"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_rejected_total",
			Help:      "Ledger operations rejected, by error code.",
		}, []string{"operation", "code"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eligibility_cache_lookups_total",
			Help:      "Eligibility cache lookups by result.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	registry.MustRegister(m.entries, m.points, m.rejections, m.cacheLookups, m.requests, m.durations)
	return m
}

// Registry exposes the underlying registry.
func (m *LedgerMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *LedgerMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *LedgerMetrics) ObserveEntry(entry *domain.LedgerEntry) {
	if m == nil || entry == nil {
		return
	}
	kind := string(entry.Kind)
	m.entries.WithLabelValues(kind).Inc()
	m.points.WithLabelValues(kind).Add(entry.Amount.InexactFloat64())
}

func (m *LedgerMetrics) ObserveRejection(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.rejections.WithLabelValues(operation, apperror.CodeOf(err)).Inc()
}

func (m *LedgerMetrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	if result == "" {
		result = "unknown"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *LedgerMetrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.durations.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
