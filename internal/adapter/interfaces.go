// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound oneM2M HTTP binding: requests issued
// by the scheduler and the provisioning tool against a CSE, and notifications
// delivered by the CSE to subscription targets.
//
// Error values defined in errors.go are mapped from HTTP status codes and
// X-M2M-RSC values by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrNotFound] for 4004).
package adapter

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-acme-cse/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CSEAdapter issues oneM2M requests against a CSE. Paths are CSE-relative
// structured or unstructured addresses such as "/cse-in/NoiseCancellationSystem".
// Every request carries the configured originator and release version and a
// fresh request identifier.
type CSEAdapter interface {
	// Create creates res of type ty under parentPath and returns the resource
	// as stored by the CSE.
	Create(ctx context.Context, parentPath string, res models.Resource) (models.Resource, error)

	// Retrieve reads the resource at path.
	Retrieve(ctx context.Context, path string) (models.Resource, error)

	// RetrieveLatest reads the newest content instance of a container.
	RetrieveLatest(ctx context.Context, containerPath string) (models.Resource, error)

	// Update applies the attributes of res to the resource at path.
	Update(ctx context.Context, path string, res models.Resource) (models.Resource, error)

	// Delete removes the resource at path.
	Delete(ctx context.Context, path string) error

	// Do sends a raw request. Unlike the typed methods a non-2xx answer is not
	// an error; it is returned in the response for the caller to judge.
	Do(ctx context.Context, req RawRequest) (RawResponse, error)
}

// NotificationSender delivers m2m:sgn notifications to a notification URI.
type NotificationSender interface {
	Notify(ctx context.Context, target string, n models.Notification) error
}

// RawRequest is a oneM2M request before transport encoding.
type RawRequest struct {
	Method string
	Path   string
	// Originator overrides the adapter default when set.
	Originator   string
	RequestID    string
	ResourceType models.ResourceType
	Headers      map[string]string
	Body         []byte
}

// RawResponse is the undecoded answer of a CSE.
type RawResponse struct {
	StatusCode int
	RSC        string
	RequestID  string
	Header     http.Header
	Body       []byte
}
