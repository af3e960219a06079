// Package version holds build metadata injected via ldflags, surfaced by
// the gavel version command and the serve startup banner.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
