package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrMissingRequestID          = errors.New("request identifier (X-M2M-RI) is required")
	ErrMissingOriginator         = errors.New("originator (X-M2M-Origin) is required")
	ErrUnsupportedReleaseVersion = errors.New("release version is not supported")
	ErrMissingResourceType       = errors.New("resource type (ty) is required for create")
	ErrEmptyContent              = errors.New("primitive content is required")
	ErrUnexpectedContent         = errors.New("primitive content is not allowed for this operation")
	ErrInvalidResultContent      = errors.New("invalid result content (rcn)")
	ErrInvalidFilterCriteria     = errors.New("invalid filter criteria")

	ErrEmptyCollection          = errors.New("collection has no requests")
	ErrInvalidCollectionRequest = errors.New("invalid collection request")
)
