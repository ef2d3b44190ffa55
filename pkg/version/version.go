// Package version exposes build information set at link time.
package version

// Build information. Overridden with -ldflags "-X github.com/rshade/datagrid/pkg/version.version=...".
var (
	version   = "dev"     //nolint:gochecknoglobals // Set via ldflags
	gitCommit = "none"    //nolint:gochecknoglobals // Set via ldflags
	buildDate = "unknown" //nolint:gochecknoglobals // Set via ldflags
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}
