package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/stockmaster/internal/app"
)

// runApp opens the runtime and launches the TUI.
func runApp(cmd *cobra.Command, skipWelcome bool) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(app.Options{
		Env:         rt.env(),
		Logger:      rt.logger,
		SkipWelcome: skipWelcome,
	})
}
