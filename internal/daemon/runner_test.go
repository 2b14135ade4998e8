package daemon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRunner_NilConfig(t *testing.T) {
	runner := New(nil, nil)
	if runner == nil {
		t.Fatal("New() with nil config returned nil runner")
	}
	cfg := runner.Config()
	if cfg.ServiceName != DefaultServiceName {
		t.Errorf("ServiceName = %q, want default %q", cfg.ServiceName, DefaultServiceName)
	}
}

func TestNewRunner_KeepsConfig(t *testing.T) {
	config := &Config{
		ServiceName: "TMinus",
		DisplayName: "TMinus Countdown Manager",
		Port:        3849,
	}
	runner := New(config, nil)
	if runner.Config().Port != 3849 {
		t.Errorf("Port = %d, want 3849", runner.Config().Port)
	}
	if runner.Config().ServiceName != "TMinus" {
		t.Errorf("ServiceName = %q, want TMinus", runner.Config().ServiceName)
	}
}

func TestRunner_Start_RunsServeLoop(t *testing.T) {
	var started atomic.Bool
	runner := New(&Config{Port: 0}, &Dependencies{
		StartFunc: func(ctx context.Context) error {
			started.Store(true)
			<-ctx.Done()
			return ctx.Err()
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- runner.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)

	if !started.Load() {
		t.Error("Start() did not invoke the serve loop")
	}
	if !runner.IsRunning() {
		t.Error("Start() did not set running state")
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Start() error = %v, want context deadline", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after context cancellation")
	}
	if runner.IsRunning() {
		t.Error("runner still running after context cancellation")
	}
}

func TestRunner_Start_AlreadyRunning(t *testing.T) {
	runner := New(&Config{Port: 0}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = runner.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)

	if err := runner.Start(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestRunner_Start_ServeError(t *testing.T) {
	serveErr := errors.New("bind failed")
	runner := New(&Config{Port: 0}, &Dependencies{
		StartFunc: func(ctx context.Context) error {
			return serveErr
		},
	})

	if err := runner.Start(context.Background()); !errors.Is(err, serveErr) {
		t.Errorf("Start() error = %v, want %v", err, serveErr)
	}
	if runner.IsRunning() {
		t.Error("runner running after serve failure")
	}
}

func TestRunner_Shutdown_NotRunning(t *testing.T) {
	runner := New(nil, nil)
	if err := runner.Shutdown(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Shutdown() error = %v, want ErrNotRunning", err)
	}
}

func TestRunner_Shutdown_CallsShutdownFunc(t *testing.T) {
	var shutdownCalled atomic.Bool
	runner := New(&Config{Port: 0}, &Dependencies{
		ShutdownFunc: func() error {
			shutdownCalled.Store(true)
			return nil
		},
	})

	errCh := make(chan error, 1)
	go func() { errCh <- runner.Start(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	if err := runner.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !shutdownCalled.Load() {
		t.Error("shutdown func was not called")
	}

	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after Shutdown()")
	}
	if runner.IsRunning() {
		t.Error("runner still running after Shutdown()")
	}
}

func TestRunner_Shutdown_Timeout(t *testing.T) {
	runner := New(&Config{Port: 0, ShutdownTimeout: 50 * time.Millisecond}, &Dependencies{
		ShutdownFunc: func() error {
			time.Sleep(time.Second)
			return nil
		},
	})

	errCh := make(chan error, 1)
	go func() { errCh <- runner.Start(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	if err := runner.Shutdown(); !errors.Is(err, ErrShutdownTimeout) {
		t.Errorf("Shutdown() error = %v, want ErrShutdownTimeout", err)
	}

	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after forced stop")
	}
}
