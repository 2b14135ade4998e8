//go:build windows

package server

// setSocketPermissions is a no-op on Windows.
// Windows uses named pipes instead of Unix sockets, and permissions are
// managed through the pipe security descriptor rather than file modes.
func setSocketPermissions(path string) {
}
