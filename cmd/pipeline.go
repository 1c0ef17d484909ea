package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/awray/streakcard/internal/cache"
	"github.com/awray/streakcard/internal/config"
	"github.com/awray/streakcard/internal/github"
	"github.com/awray/streakcard/internal/streak"
	"github.com/awray/streakcard/internal/ui"
	"github.com/awray/streakcard/internal/vault"
)

// settings is the effective fetch configuration after flags override the
// config file.
type settings struct {
	username     string
	offsetHours  int
	lookbackDays int
	maxPages     int
	eventsFile   string
	offline      bool
	calendar     bool
}

// resolveSettings merges command-line flags over the loaded config. A flag
// left at its zero value falls back to the config file, which itself falls
// back to the package defaults.
func resolveSettings(cfg *config.Config, fs *pflag.FlagSet) settings {
	s := settings{
		username:     cfg.GitHub.Username,
		offsetHours:  cfg.GitHub.TimezoneOffset,
		lookbackDays: cfg.GitHub.LookbackDays,
		maxPages:     cfg.GitHub.MaxPages,
		eventsFile:   flagEventsFile,
		offline:      flagOffline,
		calendar:     flagCalendar || cfg.GitHub.UseCalendar,
	}
	if flagUsername != "" {
		s.username = flagUsername
	}
	if fs.Changed("timezone-offset") {
		s.offsetHours = flagOffset
	}
	if flagLookbackDays > 0 {
		s.lookbackDays = flagLookbackDays
	}
	if flagMaxPages > 0 {
		s.maxPages = flagMaxPages
	}
	return s
}

// runResult is everything a display command needs after the pipeline ran.
type runResult struct {
	username string
	stats    streak.Stats
	byDay    streak.Contributions
}

// collect runs the full pipeline: resolve settings, gather events from the
// chosen source, optionally merge the calendar baseline, and compute the
// streak statistics for "today" at the configured offset. fs is the invoking
// command's flag set, consulted to tell changed flags from defaults.
func collect(ctx context.Context, fs *pflag.FlagSet) (*runResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	s := resolveSettings(cfg, fs)
	if s.username == "" {
		return nil, fmt.Errorf("no username — pass --username or run `streakcard config set github.username <name>`")
	}

	token := resolveToken()
	client := github.NewClient(github.Config{Token: token})

	events, fromNetwork, err := gatherEvents(ctx, client, s)
	if err != nil {
		return nil, err
	}

	byDay := streak.Aggregate(github.Records(events), s.offsetHours)

	// The calendar is a long-range baseline under the fresher events feed.
	// Only reachable on live runs: snapshots and fixture files carry events
	// alone.
	if s.calendar && fromNetwork {
		baseline, err := client.FetchCalendar(ctx, s.username, s.lookbackDays)
		if err != nil {
			return nil, err
		}
		byDay = streak.Merge(baseline, byDay)
	}

	today := streak.LocalDay(time.Now(), s.offsetHours)
	return &runResult{
		username: s.username,
		stats:    streak.Compute(byDay, today),
		byDay:    byDay,
	}, nil
}

// gatherEvents picks the event source: a local fixture file, the offline
// snapshot cache, or the live API (which then refreshes the snapshot).
// The bool reports whether the events came from the network.
func gatherEvents(ctx context.Context, client *github.Client, s settings) ([]github.Event, bool, error) {
	if s.eventsFile != "" {
		events, err := loadEventsFile(s.eventsFile)
		return events, false, err
	}

	if s.offline {
		c, err := cache.Open(config.GetPaths().CacheDB)
		if err != nil {
			return nil, false, err
		}
		defer c.Close()

		events, fetchedAt, err := c.Latest(s.username)
		if err != nil {
			return nil, false, err
		}
		if !fetchedAt.IsZero() {
			ui.Warn(fmt.Sprintf("offline: using snapshot from %s", fetchedAt.Local().Format("Jan 2 15:04")))
		}
		return events, false, nil
	}

	events, err := client.FetchEvents(ctx, s.username, github.EventOptions{
		MaxPages:     s.maxPages,
		LookbackDays: s.lookbackDays,
	})
	if err != nil {
		return nil, false, err
	}

	// Refresh the offline snapshot. Best effort: a failed cache write
	// should never fail a run that already has its data.
	if err := snapshotEvents(s.username, events); err != nil {
		ui.Warn(fmt.Sprintf("could not cache events: %v", err))
	}
	return events, true, nil
}

func snapshotEvents(username string, events []github.Event) error {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	c, err := cache.Open(paths.CacheDB)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Save(username, events)
}

// loadEventsFile reads a JSON array of events from disk, the same shape the
// API returns. Useful for fixtures and offline testing.
func loadEventsFile(path string) ([]github.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading events file: %w", err)
	}
	var events []github.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parsing events file %s: %w", path, err)
	}
	return events, nil
}

// resolveToken finds a GitHub token: the GITHUB_TOKEN env var wins, then
// the encrypted vault. Returns "" when no token is available — the public
// events feed works anonymously, just with tighter rate limits.
func resolveToken() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}

	v := vault.New("")
	if !v.Exists() {
		return ""
	}

	passphrase, err := vaultPassphrase()
	if err != nil || passphrase == "" {
		return ""
	}

	token, err := vault.New(passphrase).Token()
	if err != nil {
		if errors.Is(err, vault.ErrWrongPassphrase) {
			ui.Warn("wrong vault passphrase — continuing without a token")
		}
		return ""
	}
	return token
}

// vaultPassphrase reads the vault passphrase from the environment or, on a
// terminal, prompts for it without echo.
func vaultPassphrase() (string, error) {
	if p := os.Getenv("STREAKCARD_PASSPHRASE"); p != "" {
		return p, nil
	}
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", nil
	}

	fmt.Fprint(os.Stderr, "Vault passphrase: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(raw), nil
}
