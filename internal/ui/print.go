// Package ui holds streakcard's terminal look: the lipgloss palette and a
// handful of small print helpers shared by the commands.
package ui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsStdoutTTY returns true when stdout is connected to a terminal. Piped
// output (e.g. `streakcard --json | jq`) should stay free of styling.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// HasDarkBackground reports whether the terminal background is dark. Used
// to pick the card theme when it is set to "auto"; non-TTY contexts default
// to dark.
func HasDarkBackground() bool {
	if !IsStdoutTTY() {
		return true
	}
	return termenv.HasDarkBackground()
}

// Warn prints a warning message to stderr.
func Warn(msg string) {
	fmt.Fprintln(os.Stderr, Warning.Render(IconWarn+msg))
}

// Err prints an error message to stderr.
func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
}

// Tip prints a helpful tip.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints a key-value pair, padded.
func Kv(key, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-16s", key))
	fmt.Printf("%s %s\n", k, ValueStyle.Render(value))
}
