// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the request decoding and the authentication middlewares.
var (
	// ErrEmptyAuthorizationHeader is returned when token authentication is
	// enabled and the request has no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrOriginatorMismatch is returned when the X-M2M-Origin header differs
	// from the subject of the bearer token.
	ErrOriginatorMismatch = errors.New("originator does not match token subject")

	// ErrUnsupportedMediaType is returned for any serialization but JSON.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrInvalidQueryParameter is returned when rcn, fu, ty, lim or lvl cannot
	// be parsed.
	ErrInvalidQueryParameter = errors.New("invalid query parameter")
)
