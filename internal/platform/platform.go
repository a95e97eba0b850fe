// Package platform maps the host operating system to the directory
// conventions used by the tldr pages archive.
package platform

import (
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
)

// Platform identifies an operating system family recognized by the pages
// archive.
type Platform int

// Supported platforms.
const (
	Linux Platform = iota
	MacOS
	Windows
	SunOS
	Other
)

// ErrUnknownPlatform is returned when a platform name is not recognized.
var ErrUnknownPlatform = errors.New("unknown platform")

// pageDirs maps platforms to their directory segment inside the pages tree.
// Platforms without an on-disk convention are absent.
var pageDirs = map[Platform]string{
	Linux:   "linux",
	MacOS:   "osx",
	Windows: "windows",
	SunOS:   "sunos",
}

// names maps platforms to their canonical flag/display names.
var names = map[Platform]string{
	Linux:   "linux",
	MacOS:   "osx",
	Windows: "windows",
	SunOS:   "sunos",
	Other:   "other",
}

// Detect returns the platform for the current operating system.
func Detect() Platform {
	switch runtime.GOOS {
	case "linux":
		return Linux
	case "darwin":
		return MacOS
	case "windows":
		return Windows
	case "solaris", "illumos":
		return SunOS
	default:
		return Other
	}
}

// Parse resolves a platform name as given on the command line.
// Accepted names: linux, osx (alias: macos), windows, sunos.
func Parse(name string) (Platform, error) {
	switch strings.ToLower(name) {
	case "linux":
		return Linux, nil
	case "osx", "macos":
		return MacOS, nil
	case "windows":
		return Windows, nil
	case "sunos":
		return SunOS, nil
	default:
		return Other, errors.WithDetailf(ErrUnknownPlatform,
			"platform %q is not supported (valid: linux, osx, windows, sunos)", name)
	}
}

// DirName returns the page directory segment for the platform.
// The second return value is false for platforms that have no
// platform-specific page directory.
func (p Platform) DirName() (string, bool) {
	dir, ok := pageDirs[p]
	return dir, ok
}

// String returns the canonical name of the platform.
func (p Platform) String() string {
	if name, ok := names[p]; ok {
		return name
	}
	return "other"
}
