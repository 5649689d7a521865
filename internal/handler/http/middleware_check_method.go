// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/models"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler.
// Methods without a oneM2M operation, e.g. PATCH, are answered with
// OPERATION_NOT_ALLOWED (4005) instead of chi's plain text 405.
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	err := fmt.Errorf("%w: method %s", service.ErrOperationNotAllowed, r.Method)
	h.writeError(w, r.Header.Get(models.HeaderRequestID), err)
}
