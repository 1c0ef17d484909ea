package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withTempXDG points all XDG base dirs at a temp root so tests never touch
// the real home directory.
func withTempXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	return root
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	withTempXDG(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.LookbackDays != DefaultLookbackDays {
		t.Errorf("LookbackDays = %d, want %d", cfg.GitHub.LookbackDays, DefaultLookbackDays)
	}
	if cfg.GitHub.MaxPages != DefaultMaxPages {
		t.Errorf("MaxPages = %d, want %d", cfg.GitHub.MaxPages, DefaultMaxPages)
	}
	if cfg.Card.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Card.Output, DefaultOutput)
	}
	if cfg.Card.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", cfg.Card.Theme, DefaultTheme)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	withTempXDG(t)

	cfg := &Config{
		GitHub: GitHubConfig{
			Username:       "octocat",
			TimezoneOffset: -5,
			LookbackDays:   60,
			MaxPages:       3,
			UseCalendar:    true,
		},
		Card: CardConfig{Output: "out/streak.svg", Theme: "light"},
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *loaded, *cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	withTempXDG(t)
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	partial := "[github]\nusername = \"octocat\"\n"
	if err := os.WriteFile(paths.ConfigFile, []byte(partial), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.Username != "octocat" {
		t.Errorf("Username = %q, want octocat", cfg.GitHub.Username)
	}
	if cfg.GitHub.LookbackDays != DefaultLookbackDays {
		t.Errorf("LookbackDays = %d, want default %d", cfg.GitHub.LookbackDays, DefaultLookbackDays)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	withTempXDG(t)
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("{{{not toml"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestInitialized(t *testing.T) {
	withTempXDG(t)
	if Initialized() {
		t.Error("Initialized = true before any save")
	}
	if err := Save(&Config{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !Initialized() {
		t.Error("Initialized = false after save")
	}
}

func TestGetPaths_RespectsXDG(t *testing.T) {
	root := withTempXDG(t)
	paths := GetPaths()

	if want := filepath.Join(root, "config", "streakcard", "config.toml"); paths.ConfigFile != want {
		t.Errorf("ConfigFile = %q, want %q", paths.ConfigFile, want)
	}
	if want := filepath.Join(root, "data", "streakcard", "vault.age"); paths.VaultFile != want {
		t.Errorf("VaultFile = %q, want %q", paths.VaultFile, want)
	}
	if want := filepath.Join(root, "cache", "streakcard", "snapshots.db"); paths.CacheDB != want {
		t.Errorf("CacheDB = %q, want %q", paths.CacheDB, want)
	}
}
