// Package hooks runs user-supplied JavaScript when a countdown's target
// passes. The daemon loads hooks.js from the configuration directory and
// invokes its exported onElapsed function with the elapse event.
package hooks

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	requirePkg "github.com/dop251/goja_nodejs/require"
)

// HookFileName is the script loaded from the configuration directory.
const HookFileName = "hooks.js"

// ElapseEvent is the payload handed to the onElapsed JavaScript hook.
type ElapseEvent struct {
	Hash      string `json:"hash"`
	Name      string `json:"name"`
	TargetAt  int64  `json:"target_at"`
	CronExpr  string `json:"cron_expr,omitempty"`
	Recurring bool   `json:"recurring"`
}

// Engine owns a single goja runtime with the user's hook script loaded.
// goja runtimes are not goroutine safe, so every call into the VM is
// serialized behind the engine mutex.
type Engine struct {
	l         *log.Logger
	mu        sync.Mutex
	vm        *goja.Runtime
	onElapsed goja.Callable
}

// NewEngine loads the hook script at path. A missing script is not an
// error: the returned engine is disabled and every OnElapsed call is a
// no-op.
func NewEngine(l *log.Logger, path string) (*Engine, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Engine{l: l}, nil
		}
		return nil, fmt.Errorf("read hook script: %w", err)
	}
	e := &Engine{l: l}
	if err := e.load(string(src)); err != nil {
		return nil, err
	}
	l.Println("Loaded hook script:", path)
	return e, nil
}

// NewEngineFromSource builds an engine directly from script source.
func NewEngineFromSource(l *log.Logger, src string) (*Engine, error) {
	e := &Engine{l: l}
	if err := e.load(src); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) load(src string) error {
	registry := new(requirePkg.Registry)
	vm := goja.New()
	registry.Enable(vm)
	console.Enable(vm)

	if _, err := vm.RunString(src); err != nil {
		return fmt.Errorf("run hook script: %w", err)
	}

	fn, ok := goja.AssertFunction(vm.Get("onElapsed"))
	if !ok {
		return fmt.Errorf("hook script does not define onElapsed(event)")
	}
	e.vm = vm
	e.onElapsed = fn
	return nil
}

// Enabled reports whether a hook script is loaded.
func (e *Engine) Enabled() bool {
	return e != nil && e.vm != nil
}

// OnElapsed invokes the script's onElapsed function with the event.
// Disabled engines return nil immediately. Script errors are returned,
// never panicked, so a broken hook cannot take the daemon down.
func (e *Engine) OnElapsed(ev *ElapseEvent) error {
	if !e.Enabled() {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.onElapsed(goja.Undefined(), e.vm.ToValue(map[string]any{
		"hash":      ev.Hash,
		"name":      ev.Name,
		"targetAt":  ev.TargetAt,
		"cronExpr":  ev.CronExpr,
		"recurring": ev.Recurring,
	})); err != nil {
		return fmt.Errorf("onElapsed hook: %w", err)
	}
	return nil
}
