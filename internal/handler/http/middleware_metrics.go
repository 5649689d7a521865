package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-acme-cse/internal/metrics"
	"github.com/MKhiriev/go-acme-cse/models"
)

// withMetrics records every request in the acmecse_http_* collectors.
func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(mw, r)

		status := mw.status
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(r.Method, status, w.Header().Get(models.HeaderRSC), time.Since(start))
	})
}
