package testutil

import (
	"fmt"
	"slices"
	"sync"

	"gallery-go/internal/gallery"
	"gallery-go/internal/model"
)

// MemoryStore is an in-memory gallery.Store for tests. It does not implement
// gallery.Seeder, so seeding goes through the Count/BulkInsert path.
type MemoryStore struct {
	mu          sync.Mutex
	artworks    []model.Artwork
	nextID      int64
	failWith    error
	inserts     int
	broadcaster *gallery.Broadcaster
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{broadcaster: gallery.NewBroadcaster()}
}

// FailWith makes every later operation fail with err wrapped in
// gallery.ErrStorageUnavailable. Pass nil to recover.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// BulkInsertCalls returns how many batches were inserted successfully.
func (m *MemoryStore) BulkInsertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inserts
}

// Subscribers returns the number of live subscriptions.
func (m *MemoryStore) Subscribers() int {
	return m.broadcaster.Subscribers()
}

func (m *MemoryStore) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errLocked("counting artworks"); err != nil {
		return 0, err
	}
	return len(m.artworks), nil
}

func (m *MemoryStore) BulkInsert(records []model.NewArtwork) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}

	m.mu.Lock()
	if err := m.errLocked("inserting artworks"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	for i, r := range records {
		if r.Title == "" {
			m.mu.Unlock()
			return nil, fmt.Errorf("%w: artwork %d has an empty title", gallery.ErrStorageUnavailable, i)
		}
	}
	ids := make([]int64, len(records))
	for i, r := range records {
		m.nextID++
		ids[i] = m.nextID
		m.artworks = append(m.artworks, r.WithID(m.nextID))
	}
	m.inserts++
	m.mu.Unlock()

	return ids, m.broadcaster.Publish(m.list)
}

func (m *MemoryStore) Subscribe(fn gallery.Listener) (*gallery.Subscription, error) {
	return m.broadcaster.Subscribe(m.list, fn)
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) list() ([]model.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errLocked("listing artworks"); err != nil {
		return nil, err
	}
	return slices.Clone(m.artworks), nil
}

func (m *MemoryStore) errLocked(action string) error {
	if m.failWith == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", gallery.ErrStorageUnavailable, action, m.failWith)
}

var _ gallery.Store = (*MemoryStore)(nil)
