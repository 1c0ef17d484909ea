package card

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/awray/streakcard/internal/streak"
)

func sampleStats() streak.Stats {
	start := streak.NewDay(2026, time.August, 26)
	end := streak.NewDay(2026, time.August, 29)
	return streak.Stats{
		Total:        42,
		Current:      4,
		Longest:      9,
		CurrentStart: &start,
		CurrentEnd:   &end,
		LongestStart: &start,
		LongestEnd:   &end,
	}
}

func TestRender_IncludesStatsAndRanges(t *testing.T) {
	svg, err := Render("octocat", sampleStats(), Dark)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{
		"octocat",
		">42<",
		">4<",
		">9<",
		"Total Commits",
		"Current Streak",
		"Longest Streak",
		"Aug 26 - Aug 29, 2026",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("rendered SVG missing %q", want)
		}
	}
	if !strings.HasPrefix(svg, "<svg ") {
		t.Error("output does not start with an <svg> element")
	}
}

func TestRender_NoActiveStreakLabel(t *testing.T) {
	stats := sampleStats()
	stats.Current = 0
	stats.CurrentStart = nil
	stats.CurrentEnd = nil

	svg, err := Render("octocat", stats, Dark)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(svg, streak.NoStreakLabel) {
		t.Errorf("expected %q in card for a broken streak", streak.NoStreakLabel)
	}
}

func TestRender_ThemeColors(t *testing.T) {
	svg, err := Render("octocat", sampleStats(), Light)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(svg, Light.BGStart) {
		t.Errorf("expected light background %s in output", Light.BGStart)
	}
	if strings.Contains(svg, Dark.BGStart) {
		t.Error("dark background color leaked into light theme")
	}
}

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("light").Name; got != "light" {
		t.Errorf("ThemeByName(light) = %q", got)
	}
	if got := ThemeByName("LIGHT").Name; got != "light" {
		t.Errorf("ThemeByName is not case-insensitive: %q", got)
	}
	if got := ThemeByName("nope").Name; got != "dark" {
		t.Errorf("unknown theme should fall back to dark, got %q", got)
	}
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "github-streak.svg")
	if err := Write(path, "octocat", sampleStats(), Dark); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written card: %v", err)
	}
	if !strings.Contains(string(data), "octocat") {
		t.Error("written card missing username")
	}
}
