// Package version exposes the build's version metadata.
package version

import "runtime/debug"

// Set at build time via ldflags; backfilled from build info for plain
// `go install` builds.
var (
	Version = "dev"
	Commit  = "none"
)

// Short returns just the version number.
func Short() string {
	return Version
}

// Full returns the version with the commit it was built from.
func Full() string {
	return Version + " (" + Commit + ")"
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	backfill(info)
}

// backfill fills Version and Commit from build info when the ldflags
// defaults are still in place; ldflags values always win. Untagged builds
// report "(devel)" as the module version, which is no better than "dev".
func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	if Commit == "none" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				rev := s.Value
				if len(rev) > 7 {
					rev = rev[:7]
				}
				Commit = rev
				break
			}
		}
	}
}
