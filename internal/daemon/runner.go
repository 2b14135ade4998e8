// Package daemon provides the core daemon runner for tminus.
// It manages the lifecycle of the countdown service including start,
// stop, and graceful shutdown capabilities.
package daemon

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrAlreadyRunning is returned when Start() is called on a running daemon.
	ErrAlreadyRunning = errors.New("daemon is already running")

	// ErrNotRunning is returned when Shutdown() is called on a stopped daemon.
	ErrNotRunning = errors.New("daemon is not running")

	// ErrShutdownTimeout is returned when shutdown exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// Service name constants for Windows service registration.
const (
	DefaultServiceName = "TMinus"
	DefaultDisplayName = "TMinus Countdown Manager"
	DefaultDescription = "Countdown timer daemon"
)

// Config holds the configuration for the daemon runner.
type Config struct {
	// ServiceName is the Windows service name.
	ServiceName string

	// DisplayName is the Windows service display name.
	DisplayName string

	// Port is the TCP port for fallback connections.
	Port int

	// ConfigDir is the directory for configuration files.
	ConfigDir string

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// A zero value means no timeout.
	ShutdownTimeout time.Duration
}

// Dependencies holds the external dependencies for the daemon runner.
// This enables dependency injection for testing.
type Dependencies struct {
	// StartFunc runs the daemon's serve loop. It must block until the
	// provided context is canceled or the loop fails. If nil, the
	// runner blocks on the context alone.
	StartFunc func(ctx context.Context) error

	// ShutdownFunc is called during shutdown to clean up resources.
	// If nil, no cleanup function is called.
	ShutdownFunc func() error
}

// Runner manages the daemon lifecycle.
type Runner struct {
	config  *Config
	deps    *Dependencies
	running bool
	mu      sync.Mutex
	cancel  context.CancelFunc
}

// New creates a new daemon runner. Nil config or deps get defaults.
func New(config *Config, deps *Dependencies) *Runner {
	if config == nil {
		config = &Config{
			ServiceName: DefaultServiceName,
			DisplayName: DefaultDisplayName,
		}
	}
	if deps == nil {
		deps = &Dependencies{}
	}
	return &Runner{
		config: config,
		deps:   deps,
	}
}

// Config returns the runner's configuration.
func (r *Runner) Config() *Config {
	return r.config
}

// Start runs the daemon's serve loop and blocks until it exits or the
// context is canceled. Returns ErrAlreadyRunning on a running daemon.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.running = true
	r.mu.Unlock()

	var err error
	if r.deps.StartFunc != nil {
		err = r.deps.StartFunc(ctx)
	} else {
		<-ctx.Done()
		err = ctx.Err()
	}

	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
	return err
}

// Shutdown gracefully stops the daemon. The cleanup function runs
// before the serve loop's context is canceled so it can close listeners
// and flush state. Returns ErrNotRunning if the daemon is not running,
// and ErrShutdownTimeout if cleanup exceeds the configured timeout.
func (r *Runner) Shutdown() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return ErrNotRunning
	}
	r.mu.Unlock()

	if err := r.executeShutdownFunc(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}

func (r *Runner) executeShutdownFunc() error {
	if r.deps.ShutdownFunc == nil {
		return nil
	}
	if r.config.ShutdownTimeout <= 0 {
		// Shutdown proceeds regardless of cleanup errors.
		_ = r.deps.ShutdownFunc()
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- r.deps.ShutdownFunc()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.config.ShutdownTimeout):
		r.forceStop()
		return ErrShutdownTimeout
	}
}

// forceStop stops the daemon without waiting for cleanup.
func (r *Runner) forceStop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
}

// IsRunning reports whether the daemon is currently running.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
