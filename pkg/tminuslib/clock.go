package tminuslib

import "time"

// TickHandle is an opaque, cancelable reference to a scheduled one-shot
// callback. Cancel reports whether the callback was stopped before firing.
type TickHandle interface {
	Cancel() bool
}

// Clock abstracts wall-clock reads and one-shot scheduling so countdown
// logic can be driven deterministically in tests without real sleeps.
type Clock interface {
	// NowMillis returns the current time in milliseconds since the Unix epoch.
	NowMillis() int64
	// ScheduleOnce runs fn once after d and returns a cancelable handle.
	ScheduleOnce(d time.Duration, fn func()) TickHandle
}

type systemClock struct{}

// SystemClock returns a Clock backed by time.Now and time.AfterFunc.
func SystemClock() Clock { return systemClock{} }

func (systemClock) NowMillis() int64 { return time.Now().UnixMilli() }

func (systemClock) ScheduleOnce(d time.Duration, fn func()) TickHandle {
	return timerHandle{time.AfterFunc(d, fn)}
}

type timerHandle struct {
	t *time.Timer
}

func (h timerHandle) Cancel() bool { return h.t.Stop() }
