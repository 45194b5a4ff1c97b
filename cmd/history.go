package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		switch session.Kind(kind) {
		case "", session.KindPractice, session.KindSpeed, session.KindSwipe, session.KindLesson:
		default:
			return fmt.Errorf("unknown session kind: %q", kind)
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		recs, err := rt.store.EventRepo().QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit, Kind: kind})
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions yet.")
			return nil
		}

		t := newTable("WHEN", "KIND", "FILTER", "SCORE", "POINTS", "TIME", "END")
		for _, r := range recs {
			t.Row(
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				r.Kind,
				r.Filter,
				fmt.Sprintf("%d/%d (%d%%)", r.CorrectAnswers, r.QuestionsServed, session.Percentage(r.CorrectAnswers, r.QuestionsServed)),
				strconv.Itoa(r.Score),
				fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
				r.Action,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of sessions to show")
	historyCmd.Flags().String("kind", "", "Only sessions of this kind (practice, speed, swipe, lesson)")
}
