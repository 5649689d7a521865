package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

const (
	callbackStatusSuccess = "success"
	callbackStatusError   = "error"
)

// SchedulerHandler receives the schedule notifications sent by the CSE.
type SchedulerHandler struct {
	services *service.SchedulerServices

	now func() time.Time

	logger *logger.Logger
}

func NewSchedulerHandler(services *service.SchedulerServices, logger *logger.Logger) *SchedulerHandler {
	logger.Info().Msg("scheduler http handler created")
	return &SchedulerHandler{
		services: services,
		now:      time.Now,
		logger:   logger,
	}
}

// Init builds the router of the scheduler callback server.
func (h *SchedulerHandler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withTraceID(h.logger))
	router.Use(withLogging)

	router.Post("/callback", h.callback)
	router.Get("/schedule", h.schedule)
	router.Get("/__version__", h.version)

	return router
}

func (h *SchedulerHandler) callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		log.Err(err).Msg("error reading notification")
		h.fail(w, err)
		return
	}

	var envelope models.NotificationEnvelope
	if err = json.Unmarshal(body, &envelope); err != nil {
		log.Err(err).Msg("error decoding notification")
		h.fail(w, fmt.Errorf("%w: %w", service.ErrInvalidNotification, err))
		return
	}

	if err = h.services.ScheduleService.HandleNotification(r.Context(), envelope.Notification); err != nil {
		log.Err(err).Msg("error handling notification")
		h.fail(w, err)
		return
	}

	if ri := r.Header.Get(models.HeaderRequestID); ri != "" {
		w.Header().Set(models.HeaderRequestID, ri)
	}
	w.Header().Set(models.HeaderRSC, models.RSCOK.String())
	utils.WriteJSON(w, models.CallbackResponse{Status: callbackStatusSuccess}, http.StatusOK)
}

func (h *SchedulerHandler) fail(w http.ResponseWriter, err error) {
	utils.WriteJSON(w, models.CallbackResponse{
		Status:  callbackStatusError,
		Message: err.Error(),
	}, http.StatusInternalServerError)
}

func (h *SchedulerHandler) schedule(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.ScheduleService.Current(h.now())
	if errors.Is(err, service.ErrNoActiveSchedule) {
		utils.WriteJSON(w, models.CallbackResponse{Status: callbackStatusError, Message: err.Error()}, http.StatusNotFound)
		return
	}
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error reading active schedule")
		h.fail(w, err)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *SchedulerHandler) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.services.AppInfoService.GetAppVersion(r.Context())))
}
