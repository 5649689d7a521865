package handler

import (
	"github.com/MKhiriev/go-acme-cse/internal/config"
	"github.com/MKhiriev/go-acme-cse/internal/handler/http"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/service"
)

// Handlers holds the transport handlers of a binary. The CSE fills HTTP,
// the scheduler fills Scheduler.
type Handlers struct {
	HTTP      *http.Handler
	Scheduler *http.SchedulerHandler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTP.Port == 0 {
		return nil, errNoHandlersAreCreated
	}

	h, err := http.NewHandler(services, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Handlers{HTTP: h}, nil
}

func NewSchedulerHandlers(services *service.SchedulerServices, cfg config.Scheduler, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new scheduler handlers...")

	if cfg.CallbackAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{Scheduler: http.NewSchedulerHandler(services, logger)}, nil
}
