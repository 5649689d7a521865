package service

import "errors"

// Errors of the resource service. The HTTP binding maps each of them onto a
// oneM2M response status code.
var (
	ErrBadRequest                     = errors.New("bad request")
	ErrReleaseVersionNotSupported     = errors.New("release version not supported")
	ErrNotFound                       = errors.New("resource not found")
	ErrOperationNotAllowed            = errors.New("operation not allowed")
	ErrContentsUnacceptable           = errors.New("contents unacceptable")
	ErrOriginatorHasNoPrivilege       = errors.New("originator has no privilege")
	ErrConflict                       = errors.New("resource already exists")
	ErrOriginatorHasAlreadyRegistered = errors.New("originator has already registered")
	ErrNotImplemented                 = errors.New("operation not implemented")
	ErrTargetNotReachable             = errors.New("target not reachable")
	ErrSubscriptionVerificationFailed = errors.New("subscription verification initiation failed")
	ErrInvalidChildResourceType       = errors.New("invalid child resource type")
	ErrAppIDNotAllowed                = errors.New("app-id must start with 'R' or 'N'")
	ErrOriginatorNotAllowedToRegister = errors.New("originator is not allowed to register")
	ErrVersionIsNotSpecified          = errors.New("application version is not specified")
	ErrCSEBaseNotInitialized          = errors.New("cse base is not initialized")
)

// Errors of the scheduler.
var (
	ErrInvalidNotification = errors.New("invalid notification")
	ErrNoActiveSchedule    = errors.New("no active schedule")
	ErrExecutionStateWrite = errors.New("failed to write execution state")
)

// Errors of the provisioning runner.
var (
	ErrRequestFailed     = errors.New("request failed")
	ErrExpectationFailed = errors.New("unexpected response status")
	ErrExtractionFailed  = errors.New("variable extraction failed")
)
