package scheduler

import "time"

// ElapseEvent represents a pending countdown expiry in the scheduler heap.
// It is an in-memory only type; the heap is rebuilt from persisted items on
// daemon restart.
type ElapseEvent struct {
	// Hash is the unique identifier of the countdown that elapses at TriggerAt.
	Hash string
	// TriggerAt is the wall-clock time when the countdown's target passes.
	TriggerAt time.Time
	// CronExpr is the cron expression for recurring countdowns.
	// Empty string means one-shot, no re-arming after firing.
	CronExpr string
}
