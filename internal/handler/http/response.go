package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-acme-cse/internal/logger"
	"github.com/MKhiriev/go-acme-cse/internal/utils"
	"github.com/MKhiriev/go-acme-cse/models"
)

// resource is the single entry point of the oneM2M binding.
func (h *Handler) resource(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	req, err := h.buildRequest(r)
	if err != nil {
		log.Err(err).Msg("error decoding request primitive")
		h.writeError(w, req.RequestID, err)
		return
	}

	resp, err := h.services.ResourceService.Handle(r.Context(), req)
	if err != nil {
		rsc := rscFromError(err)
		event := log.Warn()
		if rsc == models.RSCInternalServerError {
			event = log.Error()
		}
		event.Err(err).
			Str("op", req.Operation.String()).
			Str("to", req.To).
			Str("originator", req.Originator).
			Int("rsc", int(rsc)).
			Msg("request failed")
		h.writeError(w, req.RequestID, err)
		return
	}

	if resp.RequestID == "" {
		resp.RequestID = req.RequestID
	}
	h.writeResponse(w, resp)
}

func (h *Handler) setHeaders(w http.ResponseWriter, rsc models.ResponseStatusCode, requestID string) {
	header := w.Header()
	header.Set(models.HeaderRSC, strconv.Itoa(int(rsc)))
	if requestID != "" {
		header.Set(models.HeaderRequestID, requestID)
	}
	if h.releaseVersion != "" {
		header.Set(models.HeaderReleaseVersion, h.releaseVersion)
	}
	header.Set("Content-Type", models.MediaTypeJSON)
}

func (h *Handler) writeResponse(w http.ResponseWriter, resp models.Response) {
	h.setHeaders(w, resp.StatusCode, resp.RequestID)
	if resp.Content == nil {
		w.WriteHeader(resp.StatusCode.HTTPStatus())
		return
	}
	if _, err := utils.WriteJSON(w, resp.Content, resp.StatusCode.HTTPStatus()); err != nil {
		h.logger.Err(err).Msg("error writing response")
	}
}

// writeError answers with the status code mapped from err and an m2m:dbg body.
func (h *Handler) writeError(w http.ResponseWriter, requestID string, err error) {
	h.writeStatus(w, rscFromError(err), requestID, err.Error())
}

func (h *Handler) writeStatus(w http.ResponseWriter, rsc models.ResponseStatusCode, requestID, message string) {
	h.setHeaders(w, rsc, requestID)
	if _, err := utils.WriteJSON(w, models.DebugInfo{Message: message}, rsc.HTTPStatus()); err != nil {
		h.logger.Err(err).Msg("error writing error response")
	}
}
