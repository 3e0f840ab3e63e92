// Package version carries build metadata injected via ldflags.
package version

import "fmt"

// Build-time variables set by ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns version information.
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String returns a one-line version summary.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
