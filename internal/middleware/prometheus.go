package middleware

import (
	"net/http"
	"time"

	"github.com/taskhub/taskhub/internal/metrics"
)

// Prometheus records duration and count for each request. Scrapes of /metrics
// itself are not recorded.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		if r.URL.Path == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, r.URL.Path, rec.status, time.Since(start).Seconds())
	})
}
