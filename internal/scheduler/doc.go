// Package scheduler tracks when countdown targets elapse. It runs a single
// goroutine over a min-heap of ElapseEvents sorted by trigger time, with a
// 60-second max-sleep-cap to handle NTP steps, DST transitions, and system
// sleep.
//
// When an event fires the registered OnElapse callback runs; recurring
// countdowns (those carrying a cron expression) are re-armed to the next
// occurrence automatically. The heap is in-memory only and is rebuilt from
// persisted items on daemon restart.
package scheduler
