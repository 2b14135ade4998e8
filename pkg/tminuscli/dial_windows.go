//go:build windows

package tminuscli

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/Microsoft/go-winio"
)

// dialPipeFunc points to the pipe dialer. Tests replace it to mock
// pipe dialing behavior.
var dialPipeFunc = dialPipeImpl

func dialPipeImpl(path string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return winio.DialPipeContext(ctx, path)
}

// dial establishes a connection to the daemon using the named pipe with
// TCP fallback. Transport priority: named pipe > TCP.
func dial() (net.Conn, error) {
	if forceTCP() {
		return dialFunc("tcp", tcpAddress())
	}
	path := pipePath()
	debugLog("Attempting connection via named pipe at %s", path)
	conn, pipeErr := dialPipeFunc(path, socketDialTimeout)
	if pipeErr != nil {
		debugLog("Named pipe connection failed: %v, falling back to TCP", pipeErr)
		conn, err := dialFunc("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to connect: named pipe error: %v; tcp error: %w", pipeErr, err)
		}
		debugLog("Successfully connected via TCP fallback to %s", tcpAddress())
		return conn, nil
	}
	debugLog("Successfully connected via named pipe")
	return conn, nil
}

// isDaemonRunning reports whether something is accepting on the path.
func isDaemonRunning(path string) bool {
	if forceTCP() {
		conn, err := net.DialTimeout("tcp", path, socketDialTimeout)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}
	conn, err := dialPipeFunc(path, socketDialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
