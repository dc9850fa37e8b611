// Package version holds build metadata for the tck binary.
package version

// Set with -ldflags "-X github.com/dkoosis/tck/internal/version.Version=..." by the magefile.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)
