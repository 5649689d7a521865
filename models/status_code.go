package models

import (
	"net/http"
	"strconv"
)

// ResponseStatusCode is the oneM2M response status code carried in X-M2M-RSC.
type ResponseStatusCode int

const (
	RSCOK                                       ResponseStatusCode = 2000
	RSCCreated                                  ResponseStatusCode = 2001
	RSCDeleted                                  ResponseStatusCode = 2002
	RSCUpdated                                  ResponseStatusCode = 2004
	RSCBadRequest                               ResponseStatusCode = 4000
	RSCReleaseVersionNotSupported               ResponseStatusCode = 4001
	RSCNotFound                                 ResponseStatusCode = 4004
	RSCOperationNotAllowed                      ResponseStatusCode = 4005
	RSCContentsUnacceptable                     ResponseStatusCode = 4102
	RSCOriginatorHasNoPrivilege                 ResponseStatusCode = 4103
	RSCConflict                                 ResponseStatusCode = 4105
	RSCOriginatorHasAlreadyRegistered           ResponseStatusCode = 4117
	RSCInternalServerError                      ResponseStatusCode = 5000
	RSCNotImplemented                           ResponseStatusCode = 5001
	RSCTargetNotReachable                       ResponseStatusCode = 5203
	RSCSubscriptionVerificationInitiationFailed ResponseStatusCode = 5204
)

var httpStatusByRSC = map[ResponseStatusCode]int{
	RSCOK:                             http.StatusOK,
	RSCCreated:                        http.StatusCreated,
	RSCDeleted:                        http.StatusOK,
	RSCUpdated:                        http.StatusOK,
	RSCBadRequest:                     http.StatusBadRequest,
	RSCReleaseVersionNotSupported:     http.StatusBadRequest,
	RSCNotFound:                       http.StatusNotFound,
	RSCOperationNotAllowed:            http.StatusMethodNotAllowed,
	RSCContentsUnacceptable:           http.StatusBadRequest,
	RSCOriginatorHasNoPrivilege:       http.StatusForbidden,
	RSCConflict:                       http.StatusConflict,
	RSCOriginatorHasAlreadyRegistered: http.StatusForbidden,
	RSCInternalServerError:            http.StatusInternalServerError,
	RSCNotImplemented:                 http.StatusNotImplemented,
	RSCTargetNotReachable:             http.StatusNotFound,
	RSCSubscriptionVerificationInitiationFailed: http.StatusInternalServerError,
}

// HTTPStatus maps the oneM2M status code onto the HTTP binding status.
func (c ResponseStatusCode) HTTPStatus() int {
	if s, ok := httpStatusByRSC[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// IsSuccess reports whether c belongs to the 2xxx class.
func (c ResponseStatusCode) IsSuccess() bool {
	return c >= 2000 && c < 3000
}

func (c ResponseStatusCode) String() string {
	return strconv.Itoa(int(c))
}
