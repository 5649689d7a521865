package store

import "github.com/MKhiriev/go-acme-cse/internal/logger"

// Storages groups the persistence components used by the services.
type Storages struct {
	ResourceRepository ResourceRepository
	CollectionLoader   CollectionLoader
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		ResourceRepository: NewResourceRepository(db, log),
		CollectionLoader:   NewFileCollectionLoader(),
	}
}
