package scheduler

import (
	"container/heap"
	"context"
	"time"

	"github.com/adhocore/gronx"
	"github.com/tminus/tminus/pkg/tminuslib"
)

const maxSleepCap = 60 * time.Second

// Scheduler watches countdown expiries using a min-heap.
// It runs a background goroutine that sleeps until the next event's
// trigger time, then calls the onElapse callback with the countdown hash.
type Scheduler struct {
	addChan    chan ElapseEvent
	removeChan chan string
	ctx        context.Context
}

// New creates and starts a new Scheduler.
// The onElapse callback is invoked when a countdown's target passes.
// The scheduler goroutine exits when ctx is cancelled.
func New(ctx context.Context, onElapse func(string)) *Scheduler {
	s := &Scheduler{
		addChan:    make(chan ElapseEvent, 64),
		removeChan: make(chan string, 64),
		ctx:        ctx,
	}
	go s.run(onElapse)
	return s
}

// Add enqueues a new elapse event.
func (s *Scheduler) Add(event ElapseEvent) {
	select {
	case s.addChan <- event:
	case <-s.ctx.Done():
	}
}

// Remove cancels a pending event by countdown hash.
func (s *Scheduler) Remove(hash string) {
	select {
	case s.removeChan <- hash:
	case <-s.ctx.Done():
	}
}

// run is the core scheduler goroutine implementing the active-object pattern.
// It maintains a min-heap of events and sleeps with a 60s max-sleep-cap.
// For recurring events (CronExpr != ""), after firing it computes the next
// occurrence and re-adds it to the heap automatically.
func (s *Scheduler) run(onElapse func(string)) {
	h := &elapseHeap{}
	heap.Init(h)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if h.Len() == 0 {
			// No events, block indefinitely on channels
			return nil
		}
		next := (*h)[0].TriggerAt
		dur := time.Until(next)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-s.ctx.Done():
			return

		case event := <-s.addChan:
			heapPush(h, event)
			timerCh = resetTimer()

		case hash := <-s.removeChan:
			heapRemoveByHash(h, hash)
			timerCh = resetTimer()

		case <-timerCh:
			// Fire all events whose time has arrived
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].TriggerAt.After(now) {
				event := heapPop(h)
				onElapse(event.Hash)
				if event.CronExpr != "" {
					next, err := NextCronOccurrence(event.CronExpr, time.Now())
					if err == nil {
						heapPush(h, ElapseEvent{
							Hash:      event.Hash,
							TriggerAt: next,
							CronExpr:  event.CronExpr,
						})
					}
				}
			}
			timerCh = resetTimer()
		}
	}
}

// NextCronOccurrence returns the next time the cron expression fires strictly
// after start. Uses gronx.NextTickAfter with inclRefTime=false.
func NextCronOccurrence(expr string, start time.Time) (time.Time, error) {
	return gronx.NextTickAfter(expr, start, false)
}

// IsValidCron reports whether expr is a parseable cron expression.
func IsValidCron(expr string) bool {
	return gronx.New().IsValid(expr)
}

// HasOccurrenceWithinYear checks if a cron expression has any occurrence
// within 1 year from the given time. Returns false for invalid expressions
// or if no occurrence exists within the 1-year window. Parseable expressions
// can still never fire (e.g. "0 0 30 2 *" waits for February 30th); add-time
// validation uses this to reject them.
func HasOccurrenceWithinYear(expr string, from time.Time) bool {
	next, err := gronx.NextTickAfter(expr, from, false)
	if err != nil {
		return false
	}
	return next.Before(from.Add(365 * 24 * time.Hour))
}

// LoadEvents scans persisted countdowns at daemon startup and splits them
// into elapse events for the heap and countdowns that already elapsed while
// the daemon was down.
//
// Items with a future target are returned in pending as ElapseEvents ready
// to push into the heap. Items whose target passed are returned in missed so
// the caller can run elapse hooks and re-arm recurring ones; for a missed
// recurring item the next cron occurrence is also added to pending so the
// cycle continues. Items with an unset target (0) are skipped.
func LoadEvents(items []*tminuslib.Item, now time.Time) (missed []*tminuslib.Item, pending []ElapseEvent) {
	nowMs := now.UnixMilli()
	for _, item := range items {
		// Runs at startup before any handler can mutate items, so reading
		// the field directly is safe.
		target := item.TargetAt
		if target == 0 {
			continue
		}
		if target <= nowMs {
			missed = append(missed, item)
			if item.CronExpr != "" {
				next, err := NextCronOccurrence(item.CronExpr, now)
				if err == nil {
					pending = append(pending, ElapseEvent{
						Hash:      item.Hash,
						TriggerAt: next,
						CronExpr:  item.CronExpr,
					})
				}
			}
		} else {
			pending = append(pending, ElapseEvent{
				Hash:      item.Hash,
				TriggerAt: time.UnixMilli(target),
				CronExpr:  item.CronExpr,
			})
		}
	}
	return missed, pending
}
