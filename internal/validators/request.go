package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-acme-cse/models"
)

// Field name constants used to restrict validation of a request primitive to
// a subset of its parameters.
const (
	// FieldRequestID targets the X-M2M-RI parameter.
	FieldRequestID = "rqi"

	// FieldOriginator targets the X-M2M-Origin parameter. AE registration may
	// omit it or use the "C" and "S" placeholders.
	FieldOriginator = "fr"

	// FieldReleaseVersion targets the X-M2M-RVI parameter.
	FieldReleaseVersion = "rvi"

	// FieldResourceType targets the ty parameter of CREATE requests.
	FieldResourceType = "ty"

	// FieldContent targets the primitive content.
	FieldContent = "pc"

	// FieldResultContent targets the rcn parameter.
	FieldResultContent = "rcn"

	// FieldFilterCriteria targets the discovery parameters.
	FieldFilterCriteria = "fc"
)

var allowedResultContents = []models.ResultContent{
	models.ResultContentNothing,
	models.ResultContentAttributes,
	models.ResultContentChildReferences,
	models.ResultContentChildResources,
}

// RequestValidator implements the Validator interface for
// models.Request.
type RequestValidator struct {
	releaseVersions []string
}

// NewRequestValidator constructs a RequestValidator accepting the given
// release versions. An empty list accepts any version.
func NewRequestValidator(releaseVersions []string) Validator {
	return &RequestValidator{releaseVersions: releaseVersions}
}

// Validate checks a models.Request or *models.Request. Without fields every
// parameter is validated.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Request:
		return v.validateRequest(ctx, value, fields...)
	case *models.Request:
		return v.validateRequest(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRequest(ctx context.Context, req models.Request, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRequestID, FieldOriginator, FieldReleaseVersion, FieldResourceType, FieldContent, FieldResultContent, FieldFilterCriteria}
	}

	for _, f := range fields {
		switch f {
		case FieldRequestID:
			if req.RequestID == "" {
				return ErrMissingRequestID
			}
		case FieldOriginator:
			if req.Originator == "" && !isRegistration(req) {
				return ErrMissingOriginator
			}
		case FieldReleaseVersion:
			if req.ReleaseVersion != "" && len(v.releaseVersions) > 0 && !v.supports(req.ReleaseVersion) {
				return fmt.Errorf("%w: %s", ErrUnsupportedReleaseVersion, req.ReleaseVersion)
			}
		case FieldResourceType:
			if req.Operation == models.OperationCreate && req.ResourceType == models.TypeUnknown {
				return ErrMissingResourceType
			}
		case FieldContent:
			switch req.Operation {
			case models.OperationCreate, models.OperationUpdate:
				if len(req.Content) == 0 {
					return ErrEmptyContent
				}
			case models.OperationRetrieve, models.OperationDelete, models.OperationDiscovery:
				if len(req.Content) > 0 {
					return ErrUnexpectedContent
				}
			}
		case FieldResultContent:
			if req.ResultContent != nil && !isAllowedResultContent(*req.ResultContent) {
				return fmt.Errorf("%w: %d", ErrInvalidResultContent, *req.ResultContent)
			}
		case FieldFilterCriteria:
			fc := req.FilterCriteria
			if fc.Limit < 0 || fc.Level < 0 {
				return fmt.Errorf("%w: lim and lvl must not be negative", ErrInvalidFilterCriteria)
			}
			for _, ty := range fc.ResourceTypes {
				if !ty.IsValid() {
					return fmt.Errorf("%w: unknown resource type %d", ErrInvalidFilterCriteria, ty)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) supports(rvi string) bool {
	for _, r := range v.releaseVersions {
		if r == rvi {
			return true
		}
	}
	return false
}

// isRegistration reports whether req registers an AE, in which case the
// originator may be empty or one of the "C" and "S" placeholders.
func isRegistration(req models.Request) bool {
	return req.Operation == models.OperationCreate && req.ResourceType == models.TypeAE
}

func isAllowedResultContent(rcn models.ResultContent) bool {
	for _, a := range allowedResultContents {
		if rcn == a {
			return true
		}
	}
	return false
}
