// Package version exposes the build metadata reported by the version
// endpoint and the container healthcheck.
package version

import "runtime/debug"

// Overridden at release time via -ldflags; local builds fall back to the
// VCS metadata Go embeds in the binary.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

func init() {
	if Commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			Commit = s.Value
		case "vcs.time":
			Date = s.Value
		case "vcs.modified":
			Dirty = s.Value
		}
	}
}
