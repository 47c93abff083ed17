// Package misc keeps small helpers shared by every other package.
package misc

import (
	"runtime/debug"
)

const appName = "press"

// GetAppName returns short program name used in logs, temp files and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns module version as recorded by the build system.
func GetVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns vcs revision if the binary was built from a checkout.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
