package middleware

import (
	"net/http"
	"time"

	"github.com/adebayo-ng/nairamart-backend/pkg/metrics"
)

// Metrics records per-route request counts and latency. It runs after the
// router so the chi route pattern is available as the label value.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpMetrics == nil {
				next.ServeHTTP(w, r)
				return
			}
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			httpMetrics.Observe(r.Method, routePattern(r), status, time.Since(started))
		})
	}
}
