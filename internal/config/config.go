// Package config loads and saves streakcard's TOML configuration and
// resolves its XDG file locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Defaults applied when a setting is absent from the config file.
const (
	DefaultLookbackDays = 120
	DefaultMaxPages     = 5
	DefaultOutput       = "assets/github-streak.svg"
	DefaultTheme        = "auto"
)

// Config holds the top-level streakcard configuration.
type Config struct {
	GitHub GitHubConfig `toml:"github"`
	Card   CardConfig   `toml:"card"`
}

// GitHubConfig controls which activity gets fetched and how days are
// bucketed.
type GitHubConfig struct {
	// Username is the GitHub login whose streaks are computed.
	Username string `toml:"username"`

	// TimezoneOffset is a fixed UTC offset in whole hours (may be
	// negative) used to decide which calendar day an event falls on.
	TimezoneOffset int `toml:"timezone_offset"`

	// LookbackDays bounds how far back the events feed is paged.
	LookbackDays int `toml:"lookback_days"`

	// MaxPages caps events-feed pagination (1-10).
	MaxPages int `toml:"max_pages"`

	// UseCalendar also queries the GraphQL contribution calendar as a
	// long-range baseline merged under the events feed. Needs a token.
	UseCalendar bool `toml:"use_calendar"`
}

// CardConfig controls SVG card output.
type CardConfig struct {
	// Output is where `streakcard card` writes the SVG.
	Output string `toml:"output"`

	// Theme is "dark", "light", or "auto" (match the terminal background).
	Theme string `toml:"theme"`
}

// Paths are the resolved on-disk locations, respecting XDG env vars.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	ConfigFile string
	VaultFile  string
	CacheDB    string
}

// GetPaths resolves streakcard's standard paths.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := filepath.Join(envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")), "streakcard")
	dataDir := filepath.Join(envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share")), "streakcard")
	cacheDir := filepath.Join(envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache")), "streakcard")

	return Paths{
		ConfigDir:  configDir,
		DataDir:    dataDir,
		CacheDir:   cacheDir,
		ConfigFile: filepath.Join(configDir, "config.toml"),
		VaultFile:  filepath.Join(dataDir, "vault.age"),
		CacheDB:    filepath.Join(cacheDir, "snapshots.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.ConfigDir, p.DataDir, p.CacheDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if no file exists.
func Load() (*Config, error) {
	data, err := os.ReadFile(GetPaths().ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	cfg := defaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized reports whether a config file exists.
func Initialized() bool {
	_, err := os.Stat(GetPaths().ConfigFile)
	return err == nil
}

func defaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			LookbackDays: DefaultLookbackDays,
			MaxPages:     DefaultMaxPages,
		},
		Card: CardConfig{
			Output: DefaultOutput,
			Theme:  DefaultTheme,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
