package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/stockmaster/internal/questions"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Work with question bank files",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check bank files against the schema and content rules",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			df, err := questions.LoadFile(path)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "✗ %v\n", err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: deck %s, version %s, %d questions",
				path, df.Deck, df.Version, len(df.Questions))
			if n := len(df.Phases); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", %d phases", n)
			}
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d bank files invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
}
