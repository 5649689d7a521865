// Package utils provides general-purpose helper utilities used across the CSE,
// the scheduler and the provisioning tool: context keys, JSON response
// writing, the HTTP client, JWT tokens, basic auth credentials, identifier
// generation, {{var}} templates and JSONPath extraction.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// OriginatorCtxKey stores the originator authenticated by the auth
// middlewares.
var OriginatorCtxKey = contextKey("originator")

// GetOriginatorFromContext returns the authenticated originator, if any.
func GetOriginatorFromContext(ctx context.Context) (string, bool) {
	originator, ok := ctx.Value(OriginatorCtxKey).(string)
	return originator, ok && originator != ""
}

// WithOriginator returns a copy of ctx carrying originator.
func WithOriginator(ctx context.Context, originator string) context.Context {
	return context.WithValue(ctx, OriginatorCtxKey, originator)
}
