package server

import (
	"log"
	"net"
	"sync"
)

// Pool tracks the connections watching each countdown. Ticks rendered by the
// countdown's scheduler are broadcast to every watcher of that hash.
type Pool struct {
	mu  *sync.RWMutex
	m   map[string][]net.Conn
	e   map[string]*Error
	log *log.Logger
}

func NewPool(l *log.Logger) *Pool {
	return &Pool{
		mu:  &sync.RWMutex{},
		m:   make(map[string][]net.Conn),
		e:   make(map[string]*Error),
		log: l,
	}
}

// AddWatcher registers a connection to receive tick updates for the given
// countdown hash.
func (p *Pool) AddWatcher(hash string, conn net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[hash] = append(p.m[hash], conn)
}

// RemoveWatcher unregisters a connection from a countdown's watcher list.
// The connection itself is not closed.
func (p *Pool) RemoveWatcher(hash string, conn net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	conns := p.m[hash]
	for i, c := range conns {
		if c == conn {
			conns[i] = conns[len(conns)-1]
			p.m[hash] = conns[:len(conns)-1]
			return
		}
	}
}

// HasWatchers reports whether any connection is watching the given hash.
func (p *Pool) HasWatchers(hash string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.m[hash]) > 0
}

// WatcherCount returns the number of connections watching the given hash.
func (p *Pool) WatcherCount(hash string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.m[hash])
}

// Broadcast sends a framed message to every watcher of the given hash.
// Connections that fail to receive are closed and dropped so one dead
// watcher cannot stall the rest.
func (p *Pool) Broadcast(hash string, data []byte) {
	head := intToBytes(uint32(len(data)))

	p.mu.RLock()
	conns := make([]net.Conn, len(p.m[hash]))
	copy(conns, p.m[hash])
	p.mu.RUnlock()

	var dead []net.Conn
	var lastErr error
	for _, conn := range conns {
		if _, err := conn.Write(head); err != nil {
			dead = append(dead, conn)
			lastErr = err
			continue
		}
		if _, err := conn.Write(data); err != nil {
			dead = append(dead, conn)
			lastErr = err
		}
	}

	for _, conn := range dead {
		if p.log != nil {
			p.log.Printf("dropping dead watcher for %s", hash)
		}
		p.RemoveWatcher(hash, conn)
		_ = conn.Close()
	}
	if lastErr != nil {
		p.WriteError(hash, ErrorTypeWarning, "watcher dropped: "+lastErr.Error())
	}
}

// DropWatchers closes and forgets every watcher of the given hash.
// Used when the countdown is removed.
func (p *Pool) DropWatchers(hash string) {
	p.mu.Lock()
	conns := p.m[hash]
	delete(p.m, hash)
	p.mu.Unlock()
	for _, conn := range conns {
		_ = conn.Close()
	}
}

// WriteError records an error for a hash. A critical error is never
// overwritten by a warning.
func (p *Pool) WriteError(hash string, errType ErrorType, errMessage string) {
	p.mu.RLock()
	err, ok := p.e[hash]
	if ok && err.Type == ErrorTypeCritical && errType != ErrorTypeCritical {
		p.mu.RUnlock()
		return
	}
	p.mu.RUnlock()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.e[hash] = &Error{errType, errMessage}
}

// ForceWriteError records an error for a hash unconditionally.
func (p *Pool) ForceWriteError(hash string, errType ErrorType, errMessage string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.e[hash] = &Error{errType, errMessage}
}

// GetError returns the recorded error for a hash, or nil.
func (p *Pool) GetError(hash string) *Error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.e[hash]
}
