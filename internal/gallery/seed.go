package gallery

import (
	"fmt"

	"gallery-go/internal/model"
)

// EnsureSeeded inserts samples the first time the store is observed empty and
// returns how many records it inserted. Stores implementing Seeder do the
// check and the insert atomically; for the rest it is Count followed by
// BulkInsert.
func EnsureSeeded(store Store, samples []model.NewArtwork, logger Logger) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}

	if seeder, ok := store.(Seeder); ok {
		inserted, err := seeder.SeedIfEmpty(samples)
		if err != nil {
			return 0, fmt.Errorf("seeding artworks: %w", err)
		}
		if !inserted {
			logger.Debug("artworks already seeded")
			return 0, nil
		}
		logger.Info("artworks seeded", "count", len(samples))
		return len(samples), nil
	}

	count, err := store.Count()
	if err != nil {
		return 0, fmt.Errorf("counting artworks: %w", err)
	}
	if count > 0 {
		logger.Debug("artworks already present, skipping seed", "count", count)
		return 0, nil
	}

	ids, err := store.BulkInsert(samples)
	if err != nil {
		return 0, fmt.Errorf("seeding artworks: %w", err)
	}
	logger.Info("artworks seeded", "count", len(ids))
	return len(ids), nil
}
