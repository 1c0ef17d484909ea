package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awray/streakcard/internal/card"
	"github.com/awray/streakcard/internal/config"
	"github.com/awray/streakcard/internal/ui"
)

var (
	flagCardOutput string
	flagCardTheme  string
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Render the streak stats as an SVG card",
	Long: `Computes the streak stats and writes them as an SVG card, suitable for
embedding in a profile README.`,
	RunE: runCard,
}

func init() {
	cardCmd.Flags().StringVarP(&flagCardOutput, "output", "o", "", "output path for the SVG (defaults to config)")
	cardCmd.Flags().StringVar(&flagCardTheme, "theme", "", "card theme: dark, light, or auto (defaults to config)")
}

func runCard(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	output := cfg.Card.Output
	if flagCardOutput != "" {
		output = flagCardOutput
	}
	themeName := cfg.Card.Theme
	if flagCardTheme != "" {
		themeName = flagCardTheme
	}
	if themeName == "" || themeName == "auto" {
		if ui.HasDarkBackground() {
			themeName = "dark"
		} else {
			themeName = "light"
		}
	}

	run, err := collect(cmd.Context(), cmd.Flags())
	if err != nil {
		return err
	}

	if err := card.Write(output, run.username, run.stats, card.ThemeByName(themeName)); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("wrote %s (%s theme)", output, themeName))
	return nil
}
