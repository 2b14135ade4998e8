package tminuscli

import (
	"fmt"
	"os"
)

// VersionCheckEnv suppresses version mismatch warnings when set to any
// non-empty value (useful for scripts and CI).
const VersionCheckEnv = "TMINUS_SUPPRESS_VERSION_CHECK"

// CheckVersionMismatch compares the daemon's version against the CLI's.
// A mismatch prints a warning to stderr but does not block execution.
func (c *Client) CheckVersionMismatch(expectedVersion string) {
	if expectedVersion == "" {
		return
	}

	if os.Getenv(VersionCheckEnv) != "" {
		return
	}

	daemonVersion, err := c.GetDaemonVersion()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not verify daemon version: %v\n", err)
		return
	}

	if daemonVersion.Version != expectedVersion {
		fmt.Fprintf(os.Stderr, "Warning: CLI version (%s) differs from daemon version (%s)\n",
			expectedVersion, daemonVersion.Version)
		fmt.Fprintf(os.Stderr, "Restart the daemon to pick up the new version.\n")
	}
}
