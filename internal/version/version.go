// Package version holds build metadata set through -ldflags.
package version

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = ""
	// BuildDate is the build time in RFC 3339.
	BuildDate = ""
)
