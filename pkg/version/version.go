// Package version provides library version and build metadata.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the go-itimer library version.
const Version = "1.0.0"

// Name is the library name used in info strings.
const Name = "go-itimer"

// Info returns a one-line description of the library build:
// name, version, toolchain and target platform.
func Info() string {
	return fmt.Sprintf("%s %s - %s on %s/%s", Name, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// VCSRevision returns the VCS revision the binary was built from, if
// the build recorded one, and whether the working tree was modified.
func VCSRevision() (revision string, modified bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return revision, modified
}
