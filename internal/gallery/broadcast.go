package gallery

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"gallery-go/internal/model"
)

// Listener receives a full snapshot of the collection. The slice belongs to
// the listener. Listeners must not mutate the store they are subscribed to.
type Listener func(artworks []model.Artwork)

// LoadFunc reads the current collection from storage.
type LoadFunc func() ([]model.Artwork, error)

// Broadcaster keeps the list of live subscriptions for a Store and pushes the
// full collection to each of them. Store implementations embed one and call
// Publish after every committed mutation.
type Broadcaster struct {
	// deliverMu serializes snapshot loading and delivery, so every listener
	// sees snapshots in commit order.
	deliverMu sync.Mutex

	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
}

// NewBroadcaster returns a Broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[uint64]*Subscription)}
}

// Subscribe loads the current collection, registers fn and delivers the
// snapshot to it. If load fails nothing is registered.
func (b *Broadcaster) Subscribe(load LoadFunc, fn Listener) (*Subscription, error) {
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	snapshot, err := load()
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.nextID++
	sub := &Subscription{id: b.nextID, fn: fn, owner: b}
	sub.active.Store(true)
	b.subs[sub.id] = sub
	b.mu.Unlock()

	fn(snapshot)
	return sub, nil
}

// Publish loads the current collection once and delivers a copy to every
// active subscriber, in subscription order. It is a no-op without subscribers.
func (b *Broadcaster) Publish(load LoadFunc) error {
	b.deliverMu.Lock()
	defer b.deliverMu.Unlock()

	subs := b.snapshotSubs()
	if len(subs) == 0 {
		return nil
	}

	snapshot, err := load()
	if err != nil {
		return err
	}

	for _, sub := range subs {
		// A listener earlier in this round may have cancelled a later one.
		if !sub.active.Load() {
			continue
		}
		sub.fn(slices.Clone(snapshot))
	}
	return nil
}

// Subscribers returns the number of active subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broadcaster) snapshotSubs() []*Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	slices.SortFunc(subs, func(x, y *Subscription) int {
		return cmp.Compare(x.id, y.id)
	})
	return subs
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Subscription is a live registration returned by Store.Subscribe.
type Subscription struct {
	id     uint64
	fn     Listener
	owner  *Broadcaster
	active atomic.Bool
	once   sync.Once
}

// Unsubscribe stops further deliveries to this subscription. It is safe to
// call more than once, and from inside the listener itself.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.active.Store(false)
		s.owner.remove(s.id)
	})
}

// Active reports whether the subscription still receives deliveries.
func (s *Subscription) Active() bool {
	return s.active.Load()
}
