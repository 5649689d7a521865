package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-acme-cse/internal/metrics"
)

// Init builds the router of the CSE.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withTraceID(h.logger))
	router.Use(withLogging)
	if h.metricsEnabled {
		metrics.RegisterMetrics()
		router.Use(withMetrics)
	}
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/__version__", h.getServerVersion)
		if h.metricsEnabled {
			r.Handle("/metrics", metrics.Handler())
		}
	})

	router.Group(func(r chi.Router) {
		if h.basicAuth != nil {
			r.Use(h.withBasicAuth)
		}
		if h.tokenAuth {
			r.Use(h.withTokenAuth)
		}

		resources := func(r chi.Router) {
			r.Get("/*", h.resource)
			r.Post("/*", h.resource)
			r.Put("/*", h.resource)
			r.Delete("/*", h.resource)
		}
		if h.root == "/" {
			resources(r)
		} else {
			r.Route(h.root, resources)
		}
	})

	router.MethodNotAllowed(h.methodNotAllowed)

	return router
}
