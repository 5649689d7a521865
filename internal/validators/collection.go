package validators

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-acme-cse/models"
)

// CollectionValidator implements the Validator interface for
// models.Collection.
type CollectionValidator struct{}

// NewCollectionValidator constructs a CollectionValidator.
func NewCollectionValidator() Validator {
	return &CollectionValidator{}
}

// Validate checks a models.Collection or *models.Collection. Field scoping
// is not supported.
func (v *CollectionValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	if len(fields) > 0 {
		return ErrUnknownField
	}

	switch value := obj.(type) {
	case models.Collection:
		return v.validateCollection(value)
	case *models.Collection:
		return v.validateCollection(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *CollectionValidator) validateCollection(col models.Collection) error {
	if len(col.Requests) == 0 {
		return ErrEmptyCollection
	}

	names := make(map[string]struct{}, len(col.Requests))
	for i, req := range col.Requests {
		if req.Name == "" {
			return fmt.Errorf("%w: request #%d has no name", ErrInvalidCollectionRequest, i+1)
		}
		if _, dup := names[req.Name]; dup {
			return fmt.Errorf("%w: duplicate request name %q", ErrInvalidCollectionRequest, req.Name)
		}
		names[req.Name] = struct{}{}

		switch strings.ToUpper(req.Method) {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			return fmt.Errorf("%w: %s: unsupported method %q", ErrInvalidCollectionRequest, req.Name, req.Method)
		}

		if !strings.HasPrefix(req.Path, "/") {
			return fmt.Errorf("%w: %s: path must start with '/'", ErrInvalidCollectionRequest, req.Name)
		}
		for _, status := range req.ExpectStatus {
			if status < 100 || status > 599 {
				return fmt.Errorf("%w: %s: invalid expected status %d", ErrInvalidCollectionRequest, req.Name, status)
			}
		}
	}

	return nil
}
