package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show portfolio, best scores and accuracy by topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		p := rt.tracker.Progress()
		if p == nil {
			fmt.Fprintln(out, "No progress yet. Run `stockmaster play` to start.")
			return nil
		}

		st := progress.CalculateStats(p)
		name := p.Name
		if name == "" {
			name = "Trader"
		}
		fmt.Fprintf(out, "%s · Day %d · %d XP · lesson streak %d\n", name, p.CurrentDay, p.XP, p.Streak)
		fmt.Fprintf(out, "Balance %s (%+.2f%%) · %d trades, %d%% profitable\n",
			layout.FormatMoney(p.Balance), st.ProfitPercentage, st.TradesCount, st.Accuracy)

		if len(p.BestScores) > 0 {
			fmt.Fprintln(out, "\nBest scores")
			for _, k := range []session.Kind{session.KindPractice, session.KindSpeed, session.KindSwipe} {
				if v, ok := p.BestScores[k]; ok {
					fmt.Fprintf(out, "  %-10s %d\n", k, v)
				}
			}
		}

		acc, err := rt.store.EventRepo().CategoryAccuracy(cmd.Context())
		if err != nil {
			return fmt.Errorf("load accuracy: %w", err)
		}
		if len(acc) > 0 {
			t := newTable("TOPIC", "CORRECT", "ANSWERED", "ACCURACY")
			for _, a := range acc {
				t.Row(a.Category, strconv.Itoa(a.Correct), strconv.Itoa(a.Total),
					fmt.Sprintf("%d%%", session.Percentage(a.Correct, a.Total)))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, t.Render())
		}

		if len(p.Achievements) > 0 {
			fmt.Fprintf(out, "\nAchievements: %d unlocked\n", len(p.Achievements))
			for _, a := range p.Achievements {
				fmt.Fprintf(out, "  🏆 %s\n", a)
			}
		}
		return nil
	},
}
