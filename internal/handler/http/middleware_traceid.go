package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a child of base carrying trace_id to the request
// context. The X-M2M-RI of a oneM2M request is logged alongside it.
func withTraceID(base *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var traceID string
			if traceIDFromRequestHeader := r.Header.Get(traceIDHeader); traceIDFromRequestHeader != "" {
				traceID = traceIDFromRequestHeader
			} else {
				traceID = uuid.NewString()
			}

			l := base.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				c = c.Str("trace_id", traceID)
				if ri := r.Header.Get("X-M2M-RI"); ri != "" {
					c = c.Str("rqi", ri)
				}
				return c
			})
			r = r.WithContext(l.WithContext(ctx))

			w.Header().Set(traceIDHeader, traceID)
			next.ServeHTTP(w, r)
		})
	}
}
