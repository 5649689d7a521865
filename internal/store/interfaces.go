package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-acme-cse/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ResourceRepository persists oneM2M resources. Every resource is addressable
// both by its identifier and by its structured path.
type ResourceRepository interface {
	Create(ctx context.Context, res models.Resource) error
	Get(ctx context.Context, ri string) (models.Resource, error)
	GetByPath(ctx context.Context, srn string) (models.Resource, error)
	Update(ctx context.Context, res models.Resource) error
	Delete(ctx context.Context, ris ...string) error

	// Children returns the direct children of pi ordered by creation time,
	// optionally restricted to the given types.
	Children(ctx context.Context, pi string, types ...models.ResourceType) ([]models.Resource, error)
	// LatestChild and OldestChild return the newest or oldest child of type
	// ty, or ErrResourceNotFound.
	LatestChild(ctx context.Context, pi string, ty models.ResourceType) (models.Resource, error)
	OldestChild(ctx context.Context, pi string, ty models.ResourceType) (models.Resource, error)
	// Descendants returns every resource below the structured path srn ordered
	// by creation time, optionally restricted to the given types.
	Descendants(ctx context.Context, srn string, types ...models.ResourceType) ([]models.Resource, error)
	// Expired returns resources whose expiration time is before now.
	Expired(ctx context.Context, now time.Time) ([]models.Resource, error)
	// Count returns the number of stored resources.
	Count(ctx context.Context) (int64, error)
	// Reset drops the schema, removing every stored resource, and migrates again.
	Reset(ctx context.Context) error
}

// CollectionLoader reads provisioning collections.
type CollectionLoader interface {
	LoadCollection(path string) (models.Collection, error)
}
