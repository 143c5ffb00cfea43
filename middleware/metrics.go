package middleware

import (
	"net/http"
	"time"

	"auth_api/internal/metrics"
)

// Metrics records request count and latency per route.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)
			collector.RecordHTTPRequest(r.Method, r.URL.Path, rec.statusCode, time.Since(start))
		})
	}
}
