package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/awray/streakcard/internal/streak"
	"github.com/awray/streakcard/internal/ui"
)

// Fetch flags shared by the root and card commands.
var (
	flagUsername     string
	flagOffset       int
	flagLookbackDays int
	flagMaxPages     int
	flagEventsFile   string
	flagOffline      bool
	flagCalendar     bool

	flagJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "streakcard",
	Short: "GitHub contribution streaks, on your terms",
	Long: `streakcard fetches your recent GitHub activity, computes your daily
contribution streaks, and shows them in the terminal or as an SVG card.`,
	RunE:          runStats,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagUsername, "username", "u", "", "GitHub username (defaults to config)")
	pf.IntVar(&flagOffset, "timezone-offset", 0, "UTC offset in whole hours, may be negative")
	pf.IntVar(&flagLookbackDays, "lookback-days", 0, "history window in days")
	pf.IntVar(&flagMaxPages, "max-pages", 0, "max API pages to fetch (1-10)")
	pf.StringVar(&flagEventsFile, "events-file", "", "read events from a local JSON file instead of the API")
	pf.BoolVar(&flagOffline, "offline", false, "reuse the last cached event snapshot")
	pf.BoolVar(&flagCalendar, "calendar", false, "merge the GraphQL contribution calendar as a baseline (needs a token)")

	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "print stats as JSON")

	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// summary is the machine-readable stats output for --json.
type summary struct {
	Username           string `json:"username"`
	TotalContributions int    `json:"total_contributions"`
	CurrentStreak      int    `json:"current_streak"`
	LongestStreak      int    `json:"longest_streak"`
	CurrentRange       string `json:"current_range"`
	LongestRange       string `json:"longest_range"`
	DaysWithCommits    int    `json:"days_with_commits"`
}

func newSummary(username string, stats streak.Stats, byDay streak.Contributions) summary {
	active := 0
	for _, n := range byDay {
		if n > 0 {
			active++
		}
	}
	return summary{
		Username:           username,
		TotalContributions: stats.Total,
		CurrentStreak:      stats.Current,
		LongestStreak:      stats.Longest,
		CurrentRange:       streak.FormatRange(stats.CurrentStart, stats.CurrentEnd),
		LongestRange:       streak.FormatRange(stats.LongestStart, stats.LongestEnd),
		DaysWithCommits:    active,
	}
}

// runStats is the default command: compute streaks and show them.
func runStats(cmd *cobra.Command, _ []string) error {
	run, err := collect(cmd.Context(), cmd.Flags())
	if err != nil {
		return err
	}

	if flagJSON {
		out, err := json.MarshalIndent(newSummary(run.username, run.stats, run.byDay), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	ui.Header(ui.IconFire + " " + run.username)
	ui.Kv("Total commits", fmt.Sprint(run.stats.Total))
	ui.Kv("Current streak", streakLine(run.stats.Current, run.stats.CurrentStart, run.stats.CurrentEnd))
	ui.Kv("Longest streak", streakLine(run.stats.Longest, run.stats.LongestStart, run.stats.LongestEnd))

	if run.stats.Current == 0 && run.stats.Total > 0 {
		ui.Tip("push something today to start a new streak.")
	}
	fmt.Println()
	return nil
}

// streakLine renders "N days (range)" or a plain zero.
func streakLine(n int, start, end *streak.Day) string {
	if n == 0 {
		return "0 — " + streak.NoStreakLabel
	}
	unit := "days"
	if n == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%d %s (%s)", n, unit, streak.FormatRange(start, end))
}
