package tminuslib

import (
	"log"
	"runtime/debug"
)

// SafeGo runs fn in a goroutine with panic recovery.
// If l is non-nil, panics are logged with stack traces. context names the
// call site for the log line. Used for user-supplied callbacks (hooks,
// elapse notifications) that must not take the daemon down.
func SafeGo(l *log.Logger, context string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if l != nil {
					l.Printf("PANIC [%s]: %v\n%s", context, r, debug.Stack())
				}
			}
		}()
		fn()
	}()
}
