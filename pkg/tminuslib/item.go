// Package tminuslib provides the core countdown primitives for tminus:
// the duration formatter, the second-aligned countdown scheduler, and the
// manager that persists named countdowns.
package tminuslib

import (
	"sync"
	"time"
)

// Item represents a named countdown tracked by the manager, with its target
// timestamp and persistence metadata.
type Item struct {
	// Hash is the unique identifier of the countdown.
	Hash string `json:"hash"`
	// Name is the user-facing name of the countdown.
	Name string `json:"name"`
	// TargetAt is the target timestamp in milliseconds since epoch, 0 = unset.
	TargetAt int64 `json:"target_at"`
	// CronExpr, when non-empty, makes the countdown recurring: after the
	// target elapses it is re-armed to the next cron occurrence.
	CronExpr string `json:"cron_expr,omitempty"`
	// DateAdded is the time when the countdown was created.
	DateAdded time.Time `json:"date_added"`
	// Hidden marks countdowns the CLI omits from default listings.
	Hidden bool `json:"hidden"`

	// mu is shared with the owning manager, like every other item it holds.
	mu *sync.RWMutex
}

// ItemsMap is a map of countdown items indexed by their unique identifier.
type ItemsMap map[string]*Item

type itemOpts struct {
	Hide     bool
	CronExpr string
}

func newItem(mu *sync.RWMutex, name string, target int64, opts *itemOpts) (*Item, error) {
	if opts == nil {
		opts = &itemOpts{}
	}
	if name == "" {
		return nil, ErrNameEmpty
	}
	return &Item{
		Hash:      GenHash(),
		Name:      name,
		TargetAt:  target,
		CronExpr:  opts.CronExpr,
		DateAdded: time.Now(),
		Hidden:    opts.Hide,
		mu:        mu,
	}, nil
}

// GetTarget returns the item's target timestamp in milliseconds.
func (i *Item) GetTarget() int64 {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.TargetAt
}

func (i *Item) setTarget(ms int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.TargetAt = ms
}

// Remaining returns the milliseconds left until the target at the given
// instant; zero or negative means elapsed.
func (i *Item) Remaining(nowMs int64) int64 {
	return i.GetTarget() - nowMs
}

// IsElapsed reports whether the target has passed at the given instant.
// An unset target (0) always counts as elapsed.
func (i *Item) IsElapsed(nowMs int64) bool {
	return i.Remaining(nowMs) <= 0
}

// IsRecurring reports whether the countdown re-arms itself after elapsing.
func (i *Item) IsRecurring() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.CronExpr != ""
}

// Display renders the item's current state: the formatted remaining duration,
// or the elapsed literal once the target is in the past.
func (i *Item) Display(nowMs int64) string {
	diff := i.Remaining(nowMs)
	if diff <= 0 {
		return ElapsedText
	}
	return FormatDuration(diff)
}
