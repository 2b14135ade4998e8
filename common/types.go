package common

import "github.com/tminus/tminus/pkg/tminuslib"

// InputHash is the common request body for methods addressed by countdown hash.
type InputHash struct {
	Hash string `json:"hash"`
}

type AddParams struct {
	Name string `json:"name"`
	// Target is the raw target input: empty (unset), a millisecond
	// timestamp, or a date/time string. Parsed daemon-side.
	Target   string `json:"target,omitempty"`
	CronExpr string `json:"cron_expr,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
}

type AddResponse struct {
	Hash     string `json:"hash"`
	Name     string `json:"name"`
	TargetAt int64  `json:"target_at"`
	Display  string `json:"display"`
}

type SetTargetParams struct {
	Hash string `json:"hash"`
	// Target is raw input like AddParams.Target; empty unsets the target.
	Target string `json:"target"`
}

type SetTargetResponse struct {
	Hash     string `json:"hash"`
	TargetAt int64  `json:"target_at"`
	Display  string `json:"display"`
}

type ListParams struct {
	ShowElapsed bool `json:"show_elapsed"`
	ShowPending bool `json:"show_pending"`
}

type ListResponse struct {
	Items []*tminuslib.Item `json:"items"`
}

type StatusResponse struct {
	Hash        string `json:"hash"`
	Name        string `json:"name"`
	TargetAt    int64  `json:"target_at"`
	RemainingMs int64  `json:"remaining_ms"`
	Display     string `json:"display"`
	Elapsed     bool   `json:"elapsed"`
	CronExpr    string `json:"cron_expr,omitempty"`
	// LastError carries the most recent broadcast or hook failure recorded
	// for this countdown, empty when none occurred.
	LastError string `json:"last_error,omitempty"`
}

type WatchResponse struct {
	Hash        string `json:"hash"`
	Name        string `json:"name"`
	TargetAt    int64  `json:"target_at"`
	RemainingMs int64  `json:"remaining_ms"`
	Display     string `json:"display"`
	CronExpr    string `json:"cron_expr,omitempty"`
}

// TickResponse is pushed to watching connections once per second.
type TickResponse struct {
	Hash        string     `json:"hash"`
	Action      TickAction `json:"action"`
	RemainingMs int64      `json:"remaining_ms,omitempty"`
	Display     string     `json:"display"`
	TargetAt    int64      `json:"target_at,omitempty"`
}

type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"build_type,omitempty"`
}
