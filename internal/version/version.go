// Package version provides build-time version information for coverpost.
// Values are injected with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the application.
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// Info holds all version information for the application.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns all version information as a structured type.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string.
func String() string {
	info := GetInfo()
	if Commit != "unknown" && Date != "unknown" {
		commit := info.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		return fmt.Sprintf("coverpost version %s (commit: %s, built: %s, %s, %s)",
			info.Version, commit, info.Date, info.GoVersion, info.Platform)
	}
	return fmt.Sprintf("coverpost version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
}

// Short returns the bare version.
func Short() string {
	return Version
}
