// Package misc carries build identity helpers used in logs, reports and the
// CLI version string.
package misc

import (
	"runtime/debug"
	"strings"
)

const appName = "mailedit"

// set by the build system via -ldflags, falls back to module build info
var (
	version = ""
	gitHash = ""
)

// GetAppName returns the program name used for log files, reports and the
// CLI itself.
func GetAppName() string {
	return appName
}

// GetVersion returns the program version.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "development"
}

// GetGitHash returns the short revision the program was built from.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return strings.Repeat("0", 12)
}
