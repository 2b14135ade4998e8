//go:build !windows

package tminuscli

import (
	"os"
	"path/filepath"

	"github.com/tminus/tminus/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), common.SocketFileName)
}

func getConnectionPath() string {
	if forceTCP() {
		return tcpAddress()
	}
	return socketPath()
}
