// Package cart implements the namespaced shopping-cart store. The in-memory
// line list is the source of truth; every mutation is persisted to the
// namespace's storage key so a restart (or the browser client) sees the same
// cart. Carts are never merged across namespaces.
package cart

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/model"
	"github.com/teletela/storefront/internal/storage"
)

const (
	keyPrefix    = "carrinho_teletela_"
	anonymousNS  = "visitante"
	userNSFormat = "usuario_%d"
)

// Store is the cart singleton. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	kv        *storage.Store
	log       *zap.Logger
	namespace string
	items     []model.CartItem
	subs      []chan []model.CartItem
}

// New builds a store bound to the anonymous namespace and loads whatever that
// namespace has persisted.
func New(kv *storage.Store, log *zap.Logger) *Store {
	s := &Store{kv: kv, log: log, namespace: anonymousNS}
	s.items = s.load(anonymousNS)
	return s
}

func (s *Store) storageKey(ns string) string { return keyPrefix + ns }

// load reads a namespace's persisted list. Read or parse failures are
// swallowed and mean an empty cart.
func (s *Store) load(ns string) []model.CartItem {
	var items []model.CartItem
	ok, err := s.kv.Get(s.storageKey(ns), &items)
	if err != nil {
		s.log.Warn("cart: unreadable stored cart, starting empty",
			zap.String("namespace", ns), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	return items
}

// persist writes the current list under the active namespace and notifies
// subscribers. Callers hold s.mu.
func (s *Store) persist() {
	if err := s.kv.Set(s.storageKey(s.namespace), s.items); err != nil {
		s.log.Warn("cart: persist failed", zap.String("namespace", s.namespace), zap.Error(err))
	}
	s.notifyLocked(s.snapshotLocked())
}

// notifyLocked fans a snapshot out to subscribers. When a subscriber's buffer
// is full the stale snapshot is replaced by the newest, so a slow receiver
// misses intermediate states but never ends on an outdated one. Callers hold
// s.mu.
func (s *Store) notifyLocked(snapshot []model.CartItem) {
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

func (s *Store) snapshotLocked() []model.CartItem {
	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Identify switches to the given user's namespace and reloads its persisted
// list. Called on login and on boot rehydration so one identity never sees
// another's cart under a shared profile.
func (s *Store) Identify(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.namespace = fmt.Sprintf(userNSFormat, userID)
	s.items = s.load(s.namespace)
	s.persistNotifyOnly()
}

// Reset returns to the anonymous namespace with an empty in-memory list. The
// anonymous namespace's storage is left untouched. Called on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.namespace = anonymousNS
	s.items = nil
	s.persistNotifyOnly()
}

// persistNotifyOnly notifies subscribers without writing storage; identity
// switches replace the view, they are not cart mutations.
func (s *Store) persistNotifyOnly() {
	s.notifyLocked(s.snapshotLocked())
}

// Add increments the line for tv if present, else appends a new line with
// quantity 1, recording price, display name and stock at add time.
func (s *Store) Add(tv model.Television) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == tv.ID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}
	s.items = append(s.items, model.CartItem{
		ID:        tv.ID,
		Name:      tv.Brand + " " + tv.Model,
		UnitPrice: tv.Price,
		Quantity:  1,
		Image:     tv.ImageName,
		Stock:     tv.Stock,
	})
	s.persist()
}

// Remove drops the line with the given television id.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persist()
}

// SetQuantity overwrites a line's quantity; n <= 0 removes the line.
func (s *Store) SetQuantity(id int64, n int) {
	if n <= 0 {
		s.Remove(id)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = n
			s.persist()
			return
		}
	}
}

// Clear empties the cart and persists the empty list.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Items returns a snapshot of the current line list.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Total returns the sum of line subtotals.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Subtotal()
	}
	return total
}

// Namespace returns the active storage namespace (exported for diagnostics).
func (s *Store) Namespace() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.namespace
}

// Subscribe returns a channel receiving a snapshot after every change. Slow
// receivers miss intermediate updates; the buffered snapshot is always the
// newest one. Unsubscribe via the returned cancel func.
func (s *Store) Subscribe() (<-chan []model.CartItem, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan []model.CartItem, 1)
	s.subs = append(s.subs, ch)
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, c := range s.subs {
			if c == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				close(c)
				return
			}
		}
	}
	return ch, cancel
}
