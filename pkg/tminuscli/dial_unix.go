//go:build !windows

package tminuscli

import (
	"fmt"
	"net"
)

// dial establishes a connection to the daemon using the unix socket with
// TCP fallback. Transport priority: unix socket > TCP.
func dial() (net.Conn, error) {
	if forceTCP() {
		return dialFunc("tcp", tcpAddress())
	}
	debugLog("Attempting connection via unix socket at %s", socketPath())
	conn, unixErr := dialFunc("unix", socketPath())
	if unixErr != nil {
		debugLog("Unix socket connection failed: %v, falling back to TCP", unixErr)
		conn, err := dialFunc("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to connect: unix socket error: %v; tcp error: %w", unixErr, err)
		}
		debugLog("Successfully connected via TCP fallback to %s", tcpAddress())
		return conn, nil
	}
	debugLog("Successfully connected via unix socket")
	return conn, nil
}

// isDaemonRunning reports whether something is accepting on the path.
func isDaemonRunning(path string) bool {
	network := "unix"
	if forceTCP() {
		network = "tcp"
	}
	conn, err := net.DialTimeout(network, path, socketDialTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
