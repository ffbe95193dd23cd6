// Package buildinfo exposes the version metadata stamped into the
// fatura binary at link time.
package buildinfo

// Overridden via -ldflags at release build time; the zero values mark
// a local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
