package version

import (
	"runtime/debug"
	"testing"
)

func TestBackfill_IgnoresDevelVersion(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version, Commit = "dev", "none"
	backfill(&debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef1234567890"},
		},
	})

	if Version != "dev" {
		t.Errorf("Version = %q, want dev for untagged builds", Version)
	}
	if Commit != "abcdef1" {
		t.Errorf("Commit = %q, want truncated revision abcdef1", Commit)
	}
}

func TestBackfill_LdflagsWin(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version, Commit = "v1.2.3", "deadbee"
	backfill(&debug.BuildInfo{
		Main: debug.Module{Version: "v9.9.9"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "ffffffffffffffff"},
		},
	})

	if Version != "v1.2.3" {
		t.Errorf("Version = %q, ldflags value must win", Version)
	}
	if Commit != "deadbee" {
		t.Errorf("Commit = %q, ldflags value must win", Commit)
	}
}

func TestBackfill_NilInfo(t *testing.T) {
	backfill(nil) // must not panic
}

func TestFull(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version, Commit = "v1.0.0", "abc1234"
	if got := Full(); got != "v1.0.0 (abc1234)" {
		t.Errorf("Full = %q", got)
	}
	if got := Short(); got != "v1.0.0" {
		t.Errorf("Short = %q", got)
	}
}
