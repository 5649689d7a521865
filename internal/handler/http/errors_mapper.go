package http

import (
	"errors"

	"github.com/MKhiriev/go-acme-cse/internal/service"
	"github.com/MKhiriev/go-acme-cse/internal/store"
	"github.com/MKhiriev/go-acme-cse/models"
)

// errorStatusMap is ordered: an error wrapping several sentinels maps to the
// first matching entry.
var errorStatusMap = []struct {
	err error
	rsc models.ResponseStatusCode
}{
	{service.ErrSubscriptionVerificationFailed, models.RSCSubscriptionVerificationInitiationFailed},
	{service.ErrReleaseVersionNotSupported, models.RSCReleaseVersionNotSupported},
	{service.ErrOriginatorHasAlreadyRegistered, models.RSCOriginatorHasAlreadyRegistered},
	{service.ErrOriginatorHasNoPrivilege, models.RSCOriginatorHasNoPrivilege},
	{service.ErrOriginatorNotAllowedToRegister, models.RSCOriginatorHasNoPrivilege},
	{service.ErrOperationNotAllowed, models.RSCOperationNotAllowed},
	{service.ErrContentsUnacceptable, models.RSCContentsUnacceptable},
	{service.ErrConflict, models.RSCConflict},
	{service.ErrNotFound, models.RSCNotFound},
	{service.ErrNotImplemented, models.RSCNotImplemented},
	{service.ErrTargetNotReachable, models.RSCTargetNotReachable},
	{service.ErrInvalidChildResourceType, models.RSCBadRequest},
	{service.ErrAppIDNotAllowed, models.RSCBadRequest},
	{service.ErrBadRequest, models.RSCBadRequest},

	{store.ErrResourceNotFound, models.RSCNotFound},
	{store.ErrResourceAlreadyExists, models.RSCConflict},

	{ErrOriginatorMismatch, models.RSCOriginatorHasNoPrivilege},
}

// rscFromError returns the response status code for err. Unknown errors are
// internal server errors.
func rscFromError(err error) models.ResponseStatusCode {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.rsc
		}
	}
	return models.RSCInternalServerError
}
