package tminuscli

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/tminus/tminus/common"
)

// tcpPort returns the TCP fallback port from the environment or the default.
func tcpPort() int {
	if port := os.Getenv(common.DaemonPortEnv); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			if p >= 1 && p <= 65535 {
				return p
			}
			debugLog("invalid TCP port %d, using default %d", p, common.DefaultPort)
		}
	}
	return common.DefaultPort
}

// forceTCP returns true if TMINUS_FORCE_TCP=1
func forceTCP() bool {
	return os.Getenv("TMINUS_FORCE_TCP") == "1"
}

// debugMode returns true if TMINUS_DEBUG=1
func debugMode() bool {
	return os.Getenv("TMINUS_DEBUG") == "1"
}

// tcpAddress returns "localhost:{port}"
func tcpAddress() string {
	return fmt.Sprintf("%s:%d", common.TCPHost, tcpPort())
}

// debugLog logs only if debugMode() is true
func debugLog(format string, args ...any) {
	if debugMode() {
		log.Printf(format, args...)
	}
}
