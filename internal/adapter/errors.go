package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("originator has no privilege")
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource already exists")
	ErrNotImplemented      = errors.New("operation not implemented")
	ErrInternalServerError = errors.New("internal server error")
	ErrTargetNotReachable  = errors.New("notification target not reachable")
	ErrInvalidResponse     = errors.New("invalid response from cse")
)
