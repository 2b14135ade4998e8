package tminuslib

import (
	"fmt"
	"io"
)

// RenderSink is the destination that receives the formatted display text on
// every tick. A Countdown is the only writer to its sink.
type RenderSink interface {
	SetText(text string)
}

// SinkFunc adapts a plain function to the RenderSink interface.
type SinkFunc func(text string)

// SetText calls f with the rendered text.
func (f SinkFunc) SetText(text string) { f(text) }

// WriterSink renders each tick as a single line written to W.
type WriterSink struct {
	W io.Writer
}

// SetText writes text followed by a newline.
func (s *WriterSink) SetText(text string) {
	fmt.Fprintln(s.W, text)
}
