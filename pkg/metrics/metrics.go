// Package metrics owns the Prometheus registry served on /metrics.
//
// HTTP traffic is recorded by Middleware, SQL latency by the gorm callbacks
// installed in pkg/database, cache effectiveness by pkg/cache and logins by
// the auth service.
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "bilemo"

// unmatched labels requests that no route claimed (404s, 405s).
const unmatched = "unmatched"

var httpLabels = []string{"method", "route", "status"}

var (
	requestSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent serving API requests.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, httpLabels)

	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "API requests by route and status.",
	}, httpLabels)

	inFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "API requests currently being served.",
	})

	responseBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "Size of API response bodies.",
		Buckets:   prometheus.ExponentialBuckets(128, 4, 6),
	}, []string{"method", "route"})

	queryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Time spent in SQL statements, by gorm operation.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
	}, []string{"operation"})

	// CacheHits and CacheMisses are labelled by cache store ("products").
	CacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Cache lookups answered from redis.",
	}, []string{"store"})
	CacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Cache lookups that fell through to the database.",
	}, []string{"store"})
)

// DefaultRegistry holds every collector served on /metrics.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestSeconds,
		requestsTotal,
		inFlight,
		responseBytes,
		queryDuration,
		CacheHits,
		CacheMisses,
	)
}

// MustRegister adds collectors owned by other packages.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// NewCounter registers a counter vector named bilemo_<name>.
func NewCounter(name, help string, labels ...string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)
	DefaultRegistry.MustRegister(c)
	return c
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware observes every request. It must wrap the router so the chi
// route pattern is known once the handler returns.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inFlight.Inc()
			defer inFlight.Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := routePattern(r)
			status := strconv.Itoa(rec.status)
			requestSeconds.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			requestsTotal.WithLabelValues(r.Method, route, status).Inc()
			responseBytes.WithLabelValues(r.Method, route).Observe(float64(rec.size))
		})
	}
}

// routePattern labels by "/api/users/{id}" rather than the raw path so ids
// stay out of the label set.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatched
}

// Handler serves DefaultRegistry in the text and OpenMetrics formats.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}).ServeHTTP
}

// ObserveDBQuery records one SQL statement started at start.
func ObserveDBQuery(operation string, start time.Time) {
	queryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
