package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Launch the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("skip-intro")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("skip-intro", false, "Open on the home screen instead of the intro animation")
}
