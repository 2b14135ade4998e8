package tminuslib

import (
	"sync"
)

// Manager tracks countdown items and their live schedulers.
// Items are persisted in the SQLite store; at most one active Countdown
// exists per item, registered in the active map.
type Manager struct {
	items  ItemsMap
	store  *Store
	clock  Clock
	mu     *sync.RWMutex
	active VMap[string, *Countdown]
}

// InitManager creates a manager backed by the store in the configuration
// directory and loads all persisted countdowns.
func InitManager() (*Manager, error) {
	return InitManagerWithStore(storeFileName, nil)
}

// InitManagerWithStore creates a manager backed by the database at path.
// A nil clock defaults to the system clock.
func InitManagerWithStore(path string, clock Clock) (*Manager, error) {
	if clock == nil {
		clock = SystemClock()
	}
	store, err := OpenStore(path)
	if err != nil {
		return nil, err
	}
	mu := new(sync.RWMutex)
	items, err := store.Load(mu)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &Manager{
		items:  items,
		store:  store,
		clock:  clock,
		mu:     mu,
		active: NewVMap[string, *Countdown](),
	}, nil
}

// AddCountdownOpts contains optional parameters for AddCountdown.
type AddCountdownOpts struct {
	IsHidden bool
	CronExpr string
}

// AddCountdown creates, persists and returns a new countdown item.
func (m *Manager) AddCountdown(name string, target int64, opts *AddCountdownOpts) (*Item, error) {
	if opts == nil {
		opts = &AddCountdownOpts{}
	}
	m.mu.RLock()
	for _, it := range m.items {
		if it.Name == name {
			m.mu.RUnlock()
			return nil, ErrCountdownExists
		}
	}
	m.mu.RUnlock()

	item, err := newItem(m.mu, name, target, &itemOpts{
		Hide:     opts.IsHidden,
		CronExpr: opts.CronExpr,
	})
	if err != nil {
		return nil, err
	}
	if err := m.store.Put(item); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.items[item.Hash] = item
	m.mu.Unlock()
	return item, nil
}

// GetItem returns the item with the given hash, or ErrCountdownNotFound.
func (m *Manager) GetItem(hash string) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[hash]
	if !ok {
		return nil, ErrCountdownNotFound
	}
	return item, nil
}

// GetItems returns every item sorted by target timestamp, hidden ones
// included. Whether hidden countdowns are shown is the client's decision.
func (m *Manager) GetItems() []*Item {
	return m.collect(func(*Item) bool { return true })
}

// GetPendingItems returns items whose target is still in the future.
func (m *Manager) GetPendingItems() []*Item {
	now := m.clock.NowMillis()
	return m.collect(func(i *Item) bool { return !i.IsElapsed(now) })
}

// GetElapsedItems returns items whose target has passed (or is unset).
func (m *Manager) GetElapsedItems() []*Item {
	now := m.clock.NowMillis()
	return m.collect(func(i *Item) bool { return i.IsElapsed(now) })
}

func (m *Manager) collect(keep func(*Item) bool) []*Item {
	m.mu.RLock()
	items := make([]*Item, 0, len(m.items))
	for _, item := range m.items {
		if !keep(item) {
			continue
		}
		items = append(items, item)
	}
	m.mu.RUnlock()
	SortItems(items)
	return items
}

// SetTarget updates an item's target timestamp, persists it and retargets
// the item's live scheduler if one is active.
func (m *Manager) SetTarget(hash string, target int64) error {
	item, err := m.GetItem(hash)
	if err != nil {
		return err
	}
	item.setTarget(target)
	if err := m.store.Put(item); err != nil {
		return err
	}
	if cd, ok := m.active.Get(hash); ok {
		cd.SetTarget(target)
	}
	return nil
}

// Activate returns the item's live Countdown, creating and activating one
// bound to sink if none exists. An already active countdown keeps its
// original sink; callers multiplex watchers behind that sink instead of
// rebinding it.
func (m *Manager) Activate(hash string, sink RenderSink) (*Countdown, error) {
	item, err := m.GetItem(hash)
	if err != nil {
		return nil, err
	}
	if cd, ok := m.active.Get(hash); ok {
		return cd, nil
	}
	cd := NewCountdown(m.clock)
	cd.SetTarget(item.GetTarget())
	m.active.Set(hash, cd)
	cd.Activate(sink)
	return cd, nil
}

// Deactivate stops and forgets the item's live scheduler, if any.
func (m *Manager) Deactivate(hash string) {
	if cd, ok := m.active.Get(hash); ok {
		cd.Deactivate()
		m.active.Delete(hash)
	}
}

// ActiveCount returns the number of live schedulers.
func (m *Manager) ActiveCount() int {
	return m.active.Len()
}

// RemoveCountdown deactivates, forgets and unpersists the item.
func (m *Manager) RemoveCountdown(hash string) error {
	if _, err := m.GetItem(hash); err != nil {
		return err
	}
	m.Deactivate(hash)
	if err := m.store.Delete(hash); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.items, hash)
	m.mu.Unlock()
	return nil
}

// Close deactivates every live scheduler and closes the store.
func (m *Manager) Close() error {
	m.active.Range(func(_ string, cd *Countdown) bool {
		cd.Deactivate()
		return true
	})
	m.active.Make()
	return m.store.Close()
}
