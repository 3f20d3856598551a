package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// CacheOps counts task cache operations by result (hit, miss, error).
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_cache_ops_total",
			Help: "Total task cache lookups by result",
		},
		[]string{"result"},
	)

	// CacheWarmTotal counts cache warm cycles by status (ok, error).
	CacheWarmTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_cache_warm_total",
			Help: "Total cache warm cycles by status",
		},
		[]string{"status"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, CacheOps, CacheWarmTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /tasks/123 -> /tasks/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	CacheOps.WithLabelValues("hit").Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	CacheOps.WithLabelValues("miss").Inc()
}

// RecordCacheError increments the cache error counter.
func RecordCacheError() {
	CacheOps.WithLabelValues("error").Inc()
}

// RecordCacheWarm increments the warm cycle counter for the given status (ok, error).
func RecordCacheWarm(status string) {
	CacheWarmTotal.WithLabelValues(status).Inc()
}
