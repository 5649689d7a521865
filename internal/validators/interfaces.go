// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inputs before they reach the services.
//
// RequestValidator rejects oneM2M request primitives that miss mandatory
// parameters (request identifier, originator, resource type of a CREATE,
// primitive content) or carry an unsupported release version.
// CollectionValidator checks provisioning collections before a run, so that
// a broken collection fails without sending any request.
package validators

import "context"

// Validator validates obj. fields optionally restricts the check to the named
// fields; implementations that cannot scope return ErrUnknownField.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
