package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awray/streakcard/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the streakcard version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("streakcard " + version.Full())
	},
}
