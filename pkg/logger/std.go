package logger

import (
	"log"
	"strings"
)

// ToStdLogger adapts a Logger to a *log.Logger for components that
// require the stdlib type. Messages are forwarded at info level.
func ToStdLogger(l Logger) *log.Logger {
	if s, ok := l.(*StandardLogger); ok {
		return s.Std()
	}
	return log.New(&stdWriter{l: l}, "", 0)
}

type stdWriter struct {
	l Logger
}

func (w *stdWriter) Write(p []byte) (int, error) {
	w.l.Info("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
