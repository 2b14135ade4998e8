package cmd

import "time"

const DEF_SHUTDOWN_TIMEOUT = 5 * time.Second

const DESCRIPTION = `
TMinus is a countdown manager for your terminal. It keeps
track of deadlines, launches and recurring events in a
background daemon and renders live, second-accurate
countdowns for any of them on demand.
`

const (
	AddDescription = `The add command registers a new countdown with the daemon.
The target can be a date ("2026-01-02 15:04"), an RFC3339
timestamp, or a unix-millisecond value. Alternatively use
the --in flag with a duration relative to now. A countdown
added without a target renders as already elapsed until one
is set.

Example:
        tminus add launch --at "2026-03-14 09:26"
        tminus add teabreak --in 15m
        tminus add standup --at "2026-03-16 09:00" --every "0 9 * * 1-5"

`
	ListDescription = `The list command displays the registered countdowns along
with their unique hashes which can be used with the watch,
status, set-target and remove commands.

Example:
        tminus list

`
	StatusDescription = `The status command shows a one-shot snapshot of a countdown:
its target, the remaining time and the rendered display text.

Example:
        tminus status <unique countdown hash>

`
	SetTargetDescription = `The set-target command moves an existing countdown to a new
target. Passing an empty target ("") unsets it, after which
the countdown renders as already elapsed.

Example:
        tminus set-target <hash> --at "2026-12-31 23:59"
        tminus set-target <hash> --in 90m

`
	RemoveDescription = `The remove command deletes a countdown from the daemon,
disconnecting any watchers attached to it.

Example:
        tminus remove <unique countdown hash>

`
	WatchDescription = `The watch command attaches to a countdown and renders it
live, updating once per second aligned to wall-clock second
boundaries. When the target passes the countdown reports
"Already elapsed!" and, for recurring countdowns, re-arms to
the next occurrence.

Example:
        tminus watch <unique countdown hash>
					OR
        tminus <unique countdown hash>

`
	DaemonDescription = `The daemon command runs the tminus daemon in the foreground.
It is normally started on demand by the other commands, but
running it manually is useful for debugging or supervision.

Example:
        tminus daemon

`
)
