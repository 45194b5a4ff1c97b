package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Browse the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of a deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := deckFromFlags(cmd)
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		f := session.AllQuestions()
		switch {
		case category != "" && difficulty != "":
			return errors.New("use only one of --category or --difficulty")
		case category != "":
			f = session.InCategory(questions.Category(category))
		case difficulty != "":
			d, err := questions.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			f = session.AtDifficulty(d)
		}

		pool := f.Pool(repo)
		if len(pool) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No questions match.")
			return nil
		}
		t := newTable("ID", "CATEGORY", "LEVEL", "ANSWER", "PROMPT")
		for _, q := range pool {
			t.Row(q.ID, string(q.Category), q.Difficulty.DisplayName(), q.Answer.CorrectLabel(), truncate(q.Prompt, 60))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		fmt.Fprintf(cmd.OutOrStdout(), "%d questions\n", len(pool))
		return nil
	},
}

var questionsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the categories of a deck with question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := deckFromFlags(cmd)
		if err != nil {
			return err
		}
		counts := repo.Counts()
		t := newTable("CATEGORY", "GROUP", "QUESTIONS")
		for _, c := range repo.Categories() {
			t.Row(string(c), string(questions.GroupOf(c)), strconv.Itoa(counts[c]))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{questionsListCmd, questionsCategoriesCmd} {
		c.Flags().String("deck", string(questions.DeckCharts), "Deck to show (charts, indicators, swipe, lessons)")
	}
	questionsListCmd.Flags().String("category", "", "Only questions in this category")
	questionsListCmd.Flags().String("difficulty", "", "Only questions at this difficulty")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsCategoriesCmd)
}

// deckFromFlags loads the bank without opening the store.
func deckFromFlags(cmd *cobra.Command) (*questions.Repository, error) {
	name, _ := cmd.Flags().GetString("deck")
	deck, err := questions.ParseDeck(name)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	bank, err := loadBank(cfg)
	if err != nil {
		return nil, err
	}
	return bank.Deck(deck), nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return st.Bold(true)
			}
			return st
		})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
