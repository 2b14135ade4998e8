package common

const (
	// SocketPathEnv overrides the daemon's unix socket path.
	SocketPathEnv = "TMINUS_SOCKET_PATH"
	// DaemonPortEnv overrides the daemon's TCP fallback port.
	DaemonPortEnv = "TMINUS_PORT"
)

const (
	// DefaultPort is the TCP fallback port used when unix sockets are unavailable.
	DefaultPort = 3849
	// SocketFileName is the unix socket file created under the temp dir.
	SocketFileName = "tminus.sock"
	// PipeName is the named pipe used on Windows.
	PipeName = `\\.\pipe\tminus`
	// TCPHost is the host the TCP fallback listener binds to.
	TCPHost = "localhost"
)

// PipePath returns the Windows named pipe path.
func PipePath() string {
	return PipeName
}
