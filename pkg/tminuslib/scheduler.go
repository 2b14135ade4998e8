package tminuslib

import (
	"sync"
	"time"
)

// ElapsedText is rendered once the target timestamp is in the past.
const ElapsedText = "Already elapsed!"

// Countdown drives a once-per-second render loop against a target timestamp.
// On every tick it formats the remaining duration and pushes it to the bound
// RenderSink, then re-arms itself against the next wall-clock second boundary.
//
// Invariant: at most one tick handle is pending at any time. SetTarget and
// Deactivate always cancel the pending handle before touching any other
// state (cancel before clear, never clear before cancel), so no two ticks
// can coexist and no new tick is scheduled after deactivation.
type Countdown struct {
	mu     sync.Mutex
	clock  Clock
	target int64
	handle TickHandle
	sink   RenderSink
}

// NewCountdown creates an inactive Countdown. A nil clock defaults to the
// system clock.
func NewCountdown(clock Clock) *Countdown {
	if clock == nil {
		clock = SystemClock()
	}
	return &Countdown{clock: clock}
}

// Activate binds the render sink and kicks off the tick loop against the
// current target. Calling it on an already active countdown is safe: the
// SetTarget path cancels any pending handle before scheduling a new one.
func (c *Countdown) Activate(sink RenderSink) {
	c.mu.Lock()
	c.sink = sink
	target := c.target
	c.mu.Unlock()
	c.SetTarget(target)
}

// SetTarget cancels any pending tick, stores the new target timestamp
// (milliseconds since epoch, 0 meaning unset) and runs one tick
// synchronously so the displayed text updates without waiting for the next
// second boundary.
func (c *Countdown) SetTarget(ms int64) {
	c.mu.Lock()
	if c.handle != nil {
		c.handle.Cancel()
		c.handle = nil
	}
	c.target = ms
	c.mu.Unlock()
	c.tick()
}

// SetTargetValue parses raw target input and applies it. Empty input and a
// literal zero both mean unset: the target becomes 0, which immediately
// renders as elapsed. Input that parses as neither a millisecond timestamp
// nor a known date/time layout fails with ErrInvalidTarget and leaves the
// current target untouched.
func (c *Countdown) SetTargetValue(value string) error {
	ms, err := ParseTarget(value)
	if err != nil {
		return err
	}
	c.SetTarget(ms)
	return nil
}

// Target returns the current target timestamp in milliseconds, 0 if unset.
func (c *Countdown) Target() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Active reports whether a render sink is currently bound.
func (c *Countdown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sink != nil
}

// Deactivate cancels the pending tick, clears the target and drops the sink
// reference. A timer that fires concurrently hits the sink==nil guard in tick
// and no-ops; a tick that already read the sink before Deactivate ran may
// finish that one render, but schedules nothing afterwards because the
// re-arm path re-checks the sink under the lock.
func (c *Countdown) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != nil {
		c.handle.Cancel()
		c.handle = nil
	}
	c.target = 0
	c.sink = nil
}

// tick renders once and re-arms the timer. It is invoked synchronously from
// SetTarget and asynchronously from the scheduled handle.
func (c *Countdown) tick() {
	now := c.clock.NowMillis()

	c.mu.Lock()
	sink := c.sink
	target := c.target
	c.mu.Unlock()
	if sink == nil {
		// Not activated yet, or a stale timer fired after Deactivate.
		return
	}

	if diff := target - now; diff <= 0 {
		sink.SetText(ElapsedText)
	} else {
		sink.SetText(FormatDuration(diff))
	}

	// Re-arm against the next whole-second boundary instead of a fixed 1s
	// delay: recomputing from the current clock bounds drift to a single
	// scheduling quantum rather than letting it accumulate per tick.
	delay := time.Duration(SecondMs-now%SecondMs) * time.Millisecond

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sink == nil {
		// Deactivated while rendering.
		return
	}
	if c.handle != nil {
		c.handle.Cancel()
	}
	c.handle = c.clock.ScheduleOnce(delay, c.tick)
}
