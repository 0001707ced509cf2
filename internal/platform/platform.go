// Package platform classifies the host operating system into a closed set
// of variants and carries the per-variant policies the setup stages need.
//
// Detection happens once at startup; the result is passed explicitly into
// every stage that needs it rather than living in ambient process state.
package platform

import (
	"runtime"
	"strings"
)

// OS is the closed set of platform variants gitstrap distinguishes.
type OS int

const (
	Unknown OS = iota
	Linux
	MacOS
	Windows
)

// String returns a human-readable platform name.
func (o OS) String() string {
	switch o {
	case Linux:
		return "Linux"
	case MacOS:
		return "macOS"
	case Windows:
		return "Windows"
	default:
		return "Unknown"
	}
}

// Classify maps a platform identifier to an OS variant using case-insensitive
// substring matching. Cygwin, MinGW, and MSYS environments all classify as
// Windows. Unmatched identifiers classify as Unknown; there are no error
// cases.
func Classify(identifier string) OS {
	id := strings.ToLower(identifier)

	switch {
	case strings.Contains(id, "linux"):
		return Linux
	case strings.Contains(id, "darwin"), strings.Contains(id, "mac"):
		return MacOS
	case strings.Contains(id, "cygwin"),
		strings.Contains(id, "mingw"),
		strings.Contains(id, "msys"),
		strings.Contains(id, "windows"):
		return Windows
	default:
		return Unknown
	}
}

// Detect classifies the running platform.
func Detect() OS {
	return Classify(runtime.GOOS)
}

// AlwaysEnsureAgent reports whether the SSH key stage should unconditionally
// start (or reuse) an agent and register the key. On Windows the agent is
// only started when none is currently reachable; elsewhere the agent is
// always ensured.
func (o OS) AlwaysEnsureAgent() bool {
	return o != Windows
}
