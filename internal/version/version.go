package version

import (
	"os"
	"strings"
)

// Info identifies the running build. Version comes from the VERSION file
// shipped next to the binary; Branch is derived from it and selects which
// upstream branch schema files and update checks track.
type Info struct {
	Version string
	Branch  string
}

// Load reads the VERSION file at path. A missing or empty file yields an
// "unknown" version tracking the nightly branch.
func Load(path string) Info {
	data, err := os.ReadFile(path)
	version := strings.TrimSpace(string(data))
	if err != nil || version == "" {
		return Info{Version: "unknown", Branch: "nightly"}
	}
	return Info{Version: version, Branch: BranchFor(version)}
}

// BranchFor maps a version string to its upstream branch: versions with a
// build suffix ("2.1.0-build42") are nightly builds, bare versions are
// releases from master.
func BranchFor(version string) string {
	if strings.Contains(version, "-") {
		return "nightly"
	}
	return "master"
}
