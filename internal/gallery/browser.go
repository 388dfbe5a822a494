package gallery

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"gallery-go/internal/model"
)

// DefaultSearchDelay is the debounce delay applied to search input when
// BrowserOptions leaves it unset.
const DefaultSearchDelay = 300 * time.Millisecond

// RenderFunc receives the ordered artworks to display. It is called with the
// Browser locked and must not call back into the Browser.
type RenderFunc func(results []model.Artwork)

// BrowserOptions configures a Browser. Zero values select the defaults.
type BrowserOptions struct {
	SortBy      SortKey
	SearchDelay time.Duration
	Scheduler   Scheduler
	Logger      Logger
}

// Browser is the view-model of the gallery page. It follows the store's live
// collection and re-runs Query whenever the collection, the search term or
// the sort key changes.
type Browser struct {
	store  Store
	render RenderFunc
	logger Logger
	search *Debounced[string]

	mu         sync.Mutex
	sub        *Subscription
	closed     bool
	loaded     bool
	artworks   []model.Artwork
	searchTerm string
	sortBy     SortKey
	results    []model.Artwork
}

// NewBrowser creates a Browser over store. render may be nil.
func NewBrowser(store Store, render RenderFunc, opts BrowserOptions) *Browser {
	if opts.SearchDelay <= 0 {
		opts.SearchDelay = DefaultSearchDelay
	}
	if opts.Logger == nil {
		opts.Logger = NewNopLogger()
	}
	// Fail fast on a bad key rather than on the first snapshot.
	opts.SortBy.compare()

	b := &Browser{
		store:   store,
		render:  render,
		logger:  opts.Logger,
		sortBy:  opts.SortBy,
		results: []model.Artwork{},
	}
	b.search = NewDebounced(opts.Scheduler, opts.SearchDelay, b.applySearchTerm)
	return b
}

// Open subscribes to the store. The first render happens before Open returns.
func (b *Browser) Open() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return errors.New("browser is closed")
	}
	if b.sub != nil {
		b.mu.Unlock()
		return errors.New("browser already open")
	}
	b.mu.Unlock()

	sub, err := b.store.Subscribe(b.onCollection)
	if err != nil {
		return fmt.Errorf("subscribing to artworks: %w", err)
	}

	b.mu.Lock()
	b.sub = sub
	b.mu.Unlock()
	return nil
}

// SetSearchTerm forwards term to the query after the search delay. Only the
// last term of a burst of calls is applied.
func (b *Browser) SetSearchTerm(term string) {
	b.search.Call(term)
}

// FlushSearch applies a pending search term immediately.
func (b *Browser) FlushSearch() {
	b.search.Flush()
}

// SetSortBy changes the ordering and re-renders immediately.
func (b *Browser) SetSortBy(k SortKey) {
	k.compare()

	b.mu.Lock()
	defer b.mu.Unlock()
	if k == b.sortBy {
		return
	}
	b.sortBy = k
	b.logger.Debug("sort changed", "sort", k.String())
	b.refreshLocked()
}

// SearchTerm returns the term currently applied to the results.
func (b *Browser) SearchTerm() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.searchTerm
}

// SortBy returns the current sort key.
func (b *Browser) SortBy() SortKey {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sortBy
}

// Results returns a copy of the last rendered sequence.
func (b *Browser) Results() []model.Artwork {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.results)
}

// Close cancels any pending search and stops following the store.
func (b *Browser) Close() {
	b.search.Cancel()

	b.mu.Lock()
	b.closed = true
	sub := b.sub
	b.sub = nil
	b.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

func (b *Browser) onCollection(artworks []model.Artwork) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.artworks = artworks
	b.loaded = true
	b.logger.Debug("collection updated", "count", len(artworks))
	b.refreshLocked()
}

func (b *Browser) applySearchTerm(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || term == b.searchTerm {
		return
	}
	b.searchTerm = term
	b.logger.Debug("search changed", "term", term)
	b.refreshLocked()
}

// refreshLocked re-runs the query. Nothing is rendered before the first
// snapshot arrives.
func (b *Browser) refreshLocked() {
	if !b.loaded {
		return
	}
	b.results = Query(b.artworks, b.searchTerm, b.sortBy)
	if b.render != nil {
		b.render(slices.Clone(b.results))
	}
}
