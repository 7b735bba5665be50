package platform

import (
	"runtime"
	"strings"
)

// Platform is the manifest-level operating system tag
type Platform string

const (
	Windows Platform = "windows"
	MacOSX  Platform = "osx"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Parse maps a manifest or GOOS name to a Platform
func Parse(name string) Platform {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows":
		return Windows
	case "osx", "macos", "darwin":
		return MacOSX
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// Environment describes the host a launch attempt runs on
type Environment struct {
	Platform Platform
	// Arch uses manifest naming: "x86", "x86_64", "arm", "arm64"
	Arch string
}

// Current returns the environment of the running process
func Current() Environment {
	return Environment{
		Platform: Parse(runtime.GOOS),
		Arch:     archName(runtime.GOARCH),
	}
}

// Bits returns "64" or "32", used for ${arch} in native classifiers
func (e Environment) Bits() string {
	switch e.Arch {
	case "x86_64", "arm64":
		return "64"
	default:
		return "32"
	}
}

func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "arm64"
	case "arm":
		return "arm"
	default:
		return goarch
	}
}
