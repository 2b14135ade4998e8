// Package common holds the wire-level types and constants shared between the
// tminus daemon, the client library and the CLI.
package common

// UpdateType identifies a daemon method or an update pushed to clients.
type UpdateType string

const (
	UPDATE_ADD        UpdateType = "add"
	UPDATE_REMOVE     UpdateType = "remove"
	UPDATE_LIST       UpdateType = "list"
	UPDATE_STATUS     UpdateType = "status"
	UPDATE_SET_TARGET UpdateType = "set_target"
	UPDATE_WATCH      UpdateType = "watch"
	UPDATE_TICK       UpdateType = "tick"
	UPDATE_VERSION    UpdateType = "version"
)

// TickAction describes what a pushed tick update represents.
type TickAction string

const (
	// TickProgress carries the once-per-second render of the remaining time.
	TickProgress TickAction = "tick_progress"
	// TickElapsed is sent when the countdown's target passes.
	TickElapsed TickAction = "tick_elapsed"
	// TickRearmed is sent when a recurring countdown is reset to its next occurrence.
	TickRearmed TickAction = "tick_rearmed"
)
