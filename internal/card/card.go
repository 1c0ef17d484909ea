// Package card renders streak statistics as a compact SVG card: total
// commits on the left, the current streak front and center, the longest
// streak on the right.
package card

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/awray/streakcard/internal/streak"
)

// Theme is a named card color scheme.
type Theme struct {
	Name    string
	BGStart string
	BGEnd   string
	Heading string
	Number  string
	Label   string
	Flame   string
	Divider string
}

// Dark is the default GitHub-dark inspired theme.
var Dark = Theme{
	Name:    "dark",
	BGStart: "#0d1117",
	BGEnd:   "#161b22",
	Heading: "#58a6ff",
	Number:  "#c9d1d9",
	Label:   "#8b949e",
	Flame:   "#ffa657",
	Divider: "#30363d",
}

// Light mirrors Dark on a white background.
var Light = Theme{
	Name:    "light",
	BGStart: "#ffffff",
	BGEnd:   "#f6f8fa",
	Heading: "#0969da",
	Number:  "#1f2328",
	Label:   "#59636e",
	Flame:   "#bc4c00",
	Divider: "#d1d9e0",
}

// ThemeByName resolves a theme name, defaulting to Dark for anything
// unrecognized.
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, Light.Name) {
		return Light
	}
	return Dark
}

// svgTemplate is the whole card. Fixed 900x220 canvas split into three
// equal panels by two divider lines.
var svgTemplate = template.Must(template.New("card").Parse(`<svg width="900" height="220" viewBox="0 0 900 220" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="GitHub streak stats">
  <defs>
    <linearGradient id="bg" x1="0" x2="1" y1="0" y2="1">
      <stop offset="0%" stop-color="{{.Theme.BGStart}}"/>
      <stop offset="100%" stop-color="{{.Theme.BGEnd}}"/>
    </linearGradient>
  </defs>
  <rect width="900" height="220" rx="18" fill="url(#bg)"/>
  <text x="450" y="32" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-size="20" fill="{{.Theme.Heading}}">{{.Username}} &#8226; streakcard</text>

  <line x1="300" y1="55" x2="300" y2="195" stroke="{{.Theme.Divider}}"/>
  <line x1="600" y1="55" x2="600" y2="195" stroke="{{.Theme.Divider}}"/>

  <text x="150" y="98" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-weight="700" font-size="52" fill="{{.Theme.Number}}">{{.Total}}</text>
  <text x="150" y="135" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-size="28" fill="{{.Theme.Label}}">Total Commits</text>

  <text x="450" y="88" text-anchor="middle" font-family="Segoe UI Emoji, Segoe UI Symbol" font-size="34" fill="{{.Theme.Flame}}">&#128293;</text>
  <text x="450" y="118" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-weight="700" font-size="54" fill="{{.Theme.Flame}}">{{.Current}}</text>
  <text x="450" y="154" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-size="30" fill="{{.Theme.Flame}}">Current Streak</text>
  <text x="450" y="184" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-size="21" fill="{{.Theme.Label}}">{{.CurrentRange}}</text>

  <text x="750" y="98" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-weight="700" font-size="52" fill="{{.Theme.Number}}">{{.Longest}}</text>
  <text x="750" y="135" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-size="28" fill="{{.Theme.Label}}">Longest Streak</text>
  <text x="750" y="170" text-anchor="middle" font-family="Segoe UI, Ubuntu, sans-serif" font-size="21" fill="{{.Theme.Label}}">{{.LongestRange}}</text>
</svg>
`))

type cardData struct {
	Username     string
	Theme        Theme
	Total        int
	Current      int
	Longest      int
	CurrentRange string
	LongestRange string
}

// Render produces the SVG for a user's streak stats.
func Render(username string, stats streak.Stats, theme Theme) (string, error) {
	var b strings.Builder
	err := svgTemplate.Execute(&b, cardData{
		Username:     username,
		Theme:        theme,
		Total:        stats.Total,
		Current:      stats.Current,
		Longest:      stats.Longest,
		CurrentRange: streak.FormatRange(stats.CurrentStart, stats.CurrentEnd),
		LongestRange: streak.FormatRange(stats.LongestStart, stats.LongestEnd),
	})
	if err != nil {
		return "", fmt.Errorf("rendering card: %w", err)
	}
	return b.String(), nil
}

// Write renders the card and writes it to path, creating parent directories
// as needed.
func Write(path, username string, stats streak.Stats, theme Theme) error {
	svg, err := Render(username, stats, theme)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("writing card: %w", err)
	}
	return nil
}
