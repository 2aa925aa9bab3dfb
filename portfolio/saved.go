package portfolio

import (
	"encoding/json"
	"fmt"

	"github.com/vladche/papertrade/market"
	"github.com/vladche/papertrade/store"
)

// Watchlist is the persisted list of saved symbols. Adds are idempotent
// and removals of absent items are no-ops; every change writes through
// to the store and notifies the observable list.
type Watchlist struct {
	store store.Store
	list  *List[market.Item]
}

func NewWatchlist(st store.Store) *Watchlist {
	w := &Watchlist{store: st}

	var items []market.Item
	if raw, err := st.Load(keyWatchlist); err == nil && raw != nil {
		// corrupt payloads fall back to an empty list
		if err := json.Unmarshal(raw, &items); err != nil {
			items = nil
		}
	}
	w.list = NewList(items)
	return w
}

// List is the observable view of the saved symbols.
func (w *Watchlist) List() *List[market.Item] { return w.list }

// Items returns a copy of the saved symbols.
func (w *Watchlist) Items() []market.Item { return w.list.Items() }

// Contains reports whether item is already saved.
func (w *Watchlist) Contains(item market.Item) bool {
	for _, cur := range w.list.Items() {
		if cur.Same(item) {
			return true
		}
	}
	return false
}

// Add saves item unless it is already present. The in-memory list is
// updated even when the write-through save fails; the error is advisory.
func (w *Watchlist) Add(item market.Item) error {
	if w.Contains(item) {
		return nil
	}
	items := append(w.list.Items(), item)
	return w.replace(items)
}

// Remove drops item from the saved symbols if present.
func (w *Watchlist) Remove(item market.Item) error {
	items := w.list.Items()
	for i, cur := range items {
		if cur.Same(item) {
			return w.replace(append(items[:i], items[i+1:]...))
		}
	}
	return nil
}

func (w *Watchlist) replace(items []market.Item) error {
	err := w.saveItems(items)
	w.list.Set(items)
	if err != nil {
		return fmt.Errorf("persist watchlist: %w", err)
	}
	return nil
}

func (w *Watchlist) saveItems(items []market.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return w.store.Save(keyWatchlist, raw)
}
