package server

import (
	"bytes"
	"io"
	"log"
	"net"
	"sync"
	"testing"
)

func newTestPool() *Pool {
	return NewPool(log.New(io.Discard, "", 0))
}

func TestPoolAddAndCountWatchers(t *testing.T) {
	p := newTestPool()

	if p.HasWatchers("h1") {
		t.Error("new pool should have no watchers")
	}

	c1, s1 := net.Pipe()
	defer c1.Close()
	defer s1.Close()
	c2, s2 := net.Pipe()
	defer c2.Close()
	defer s2.Close()

	p.AddWatcher("h1", s1)
	p.AddWatcher("h1", s2)

	if !p.HasWatchers("h1") {
		t.Error("expected watchers for h1")
	}
	if got := p.WatcherCount("h1"); got != 2 {
		t.Errorf("WatcherCount = %d, want 2", got)
	}
}

func TestPoolRemoveWatcher(t *testing.T) {
	p := newTestPool()

	c1, s1 := net.Pipe()
	defer c1.Close()
	defer s1.Close()

	p.AddWatcher("h1", s1)
	p.RemoveWatcher("h1", s1)

	if p.HasWatchers("h1") {
		t.Error("expected no watchers after removal")
	}

	// Removing again is a no-op
	p.RemoveWatcher("h1", s1)
}

func TestPoolBroadcastReachesAllWatchers(t *testing.T) {
	p := newTestPool()

	c1, s1 := net.Pipe()
	defer c1.Close()
	defer s1.Close()
	c2, s2 := net.Pipe()
	defer c2.Close()
	defer s2.Close()

	p.AddWatcher("h1", s1)
	p.AddWatcher("h1", s2)

	payload := []byte(`{"ok":true}`)

	var wg sync.WaitGroup
	results := make([][]byte, 2)
	for i, conn := range []net.Conn{c1, c2} {
		wg.Add(1)
		go func(i int, conn net.Conn) {
			defer wg.Done()
			var mu sync.Mutex
			buf, err := read(&mu, conn)
			if err != nil {
				t.Errorf("watcher %d read error: %v", i, err)
				return
			}
			results[i] = buf
		}(i, conn)
	}

	p.Broadcast("h1", payload)
	wg.Wait()

	for i, got := range results {
		if !bytes.Equal(got, payload) {
			t.Errorf("watcher %d got %q, want %q", i, got, payload)
		}
	}
}

func TestPoolBroadcastDropsDeadWatcher(t *testing.T) {
	p := newTestPool()

	c1, s1 := net.Pipe()
	p.AddWatcher("h1", s1)

	// Close both ends so the write fails immediately.
	c1.Close()
	s1.Close()

	p.Broadcast("h1", []byte("tick"))

	if p.HasWatchers("h1") {
		t.Error("dead watcher should have been dropped")
	}
	perr := p.GetError("h1")
	if perr == nil {
		t.Fatal("expected a recorded error after dropping a dead watcher")
	}
	if perr.Type != ErrorTypeWarning {
		t.Errorf("recorded error type = %v, want ErrorTypeWarning", perr.Type)
	}
}

func TestPoolDropWatchers(t *testing.T) {
	p := newTestPool()

	c1, s1 := net.Pipe()
	defer c1.Close()
	p.AddWatcher("h1", s1)

	p.DropWatchers("h1")
	if p.HasWatchers("h1") {
		t.Error("expected no watchers after DropWatchers")
	}
}

func TestPoolWriteErrorPrecedence(t *testing.T) {
	p := newTestPool()

	p.WriteError("h1", ErrorTypeCritical, "fatal")
	p.WriteError("h1", ErrorTypeWarning, "minor")

	err := p.GetError("h1")
	if err == nil {
		t.Fatal("expected recorded error")
	}
	if err.Type != ErrorTypeCritical || err.Message != "fatal" {
		t.Errorf("critical error was overwritten by warning: %+v", err)
	}

	p.ForceWriteError("h1", ErrorTypeWarning, "forced")
	err = p.GetError("h1")
	if err.Type != ErrorTypeWarning || err.Message != "forced" {
		t.Errorf("ForceWriteError did not overwrite: %+v", err)
	}
}

func TestPoolGetErrorMissing(t *testing.T) {
	p := newTestPool()
	if err := p.GetError("nope"); err != nil {
		t.Errorf("expected nil error for unknown hash, got %+v", err)
	}
}
