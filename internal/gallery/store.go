package gallery

import (
	"errors"

	"gallery-go/internal/model"
)

// ErrStorageUnavailable is wrapped by every error caused by the persistence
// layer being unreachable or rejecting an operation.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is the owner of the canonical artwork collection.
// It is append-only: records are never updated or deleted.
type Store interface {
	// Count returns the number of stored artworks.
	Count() (int, error)

	// BulkInsert stores all records in one atomic batch and returns the
	// assigned IDs in input order. Nothing is stored if any record is rejected.
	BulkInsert(records []model.NewArtwork) ([]int64, error)

	// Subscribe delivers the current collection to fn before returning, and
	// again after every successful mutation until the subscription is cancelled.
	Subscribe(fn Listener) (*Subscription, error)

	// Close releases the underlying storage.
	Close() error
}

// Seeder is implemented by stores that can insert the sample set atomically,
// so concurrent initializers never seed twice.
type Seeder interface {
	// SeedIfEmpty inserts records only if the store has never been seeded and
	// is empty. It reports whether anything was inserted.
	SeedIfEmpty(records []model.NewArtwork) (bool, error)
}
