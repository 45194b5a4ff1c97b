package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Answer a practice session on the command line",
	Long: "Runs a practice session without the full-screen UI. Answers are read one per\n" +
		"line from stdin: a number for multiple choice, b/buy or s/sell for chart calls.\n" +
		"Progress is recorded the same way as in the game.",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := practiceFilter(cmd)
		if err != nil {
			return err
		}
		deckName, _ := cmd.Flags().GetString("deck")
		deck, err := questions.ParseDeck(deckName)
		if err != nil {
			return err
		}
		retry, _ := cmd.Flags().GetBool("retry")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if err := rt.ensureProgress(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			count = rt.cfg.QuestionCount
		}

		mode := session.ModeScoreAndProceed
		if retry {
			mode = session.ModeRetryUntilCorrect
		}
		env := rt.env()
		p := session.NewPractice(rt.bank.Deck(deck), env.Options(session.WithMode(mode))...)
		if err := p.Start(ctx, filter, count); err != nil {
			if session.IsEmptyPool(err) {
				return fmt.Errorf("no questions available for %s in the %s deck", filter.Label(), deck)
			}
			return fmt.Errorf("start practice: %w", err)
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		sum, err := runQuiz(ctx, p, cmd.InOrStdin(), cmd.OutOrStdout(), interactive)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), sum, rt.tracker.LastUnlocked())
		return nil
	},
}

func init() {
	practiceCmd.Flags().String("category", "", "Only questions in this category")
	practiceCmd.Flags().String("group", "", "Only questions in this pattern group")
	practiceCmd.Flags().String("difficulty", "", "Only questions at this difficulty (beginner, intermediate, advanced)")
	practiceCmd.Flags().Int("count", 0, "Number of questions (default from STOCKMASTER_QUESTION_COUNT)")
	practiceCmd.Flags().String("deck", string(questions.DeckCharts), "Deck to draw from (charts or indicators)")
	practiceCmd.Flags().Bool("retry", false, "Repeat each question until it is answered correctly")
}

// practiceFilter builds the filter from the mutually exclusive flags.
func practiceFilter(cmd *cobra.Command) (session.Filter, error) {
	category, _ := cmd.Flags().GetString("category")
	group, _ := cmd.Flags().GetString("group")
	difficulty, _ := cmd.Flags().GetString("difficulty")

	set := 0
	for _, v := range []string{category, group, difficulty} {
		if v != "" {
			set++
		}
	}
	switch {
	case set > 1:
		return session.Filter{}, errors.New("use only one of --category, --group or --difficulty")
	case category != "":
		return session.InCategory(questions.Category(category)), nil
	case group != "":
		return session.InGroup(questions.Category(group)), nil
	case difficulty != "":
		d, err := questions.ParseDifficulty(difficulty)
		if err != nil {
			return session.Filter{}, err
		}
		return session.AtDifficulty(d), nil
	default:
		return session.AllQuestions(), nil
	}
}

// parseAnswer turns one input line into a choice for q.
func parseAnswer(q questions.Question, line string) (questions.Choice, error) {
	line = strings.TrimSpace(line)
	switch q.Answer.(type) {
	case questions.BinaryChoice:
		switch strings.ToLower(line) {
		case "b", "buy":
			return questions.ChooseSide(questions.Buy), nil
		case "s", "sell":
			return questions.ChooseSide(questions.Sell), nil
		}
		return questions.Choice{}, errors.New("answer b (buy) or s (sell)")
	default:
		n, err := strconv.Atoi(line)
		if err != nil {
			return questions.Choice{}, fmt.Errorf("answer with an option number 1-%d", len(q.Options()))
		}
		return questions.ChooseIndex(n - 1), nil
	}
}

// runQuiz asks every question of a started practice over in and out.
// End of input ends the session early.
func runQuiz(ctx context.Context, p *session.Practice, in io.Reader, out io.Writer, interactive bool) (session.Summary, error) {
	scanner := bufio.NewScanner(in)
	asked := -1

	for p.Active() {
		q, _ := p.Current()
		s := p.Session()
		if s.Index() != asked {
			asked = s.Index()
			printQuestion(out, q, s.Index()+1, s.Len())
		}
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			sum, _ := p.EndEarly(ctx)
			return sum, scanner.Err()
		}

		c, err := parseAnswer(q, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "  %v\n", err)
			continue
		}
		res, err := p.Submit(ctx, c)
		if errors.Is(err, session.ErrOutOfRangeChoice) {
			fmt.Fprintf(out, "  Pick one of 1-%d.\n", len(q.Options()))
			continue
		}
		if err != nil {
			return session.Summary{}, fmt.Errorf("submit answer: %w", err)
		}

		printFeedback(out, res, s.Mode())
		if err := p.Next(ctx); err != nil {
			return session.Summary{}, fmt.Errorf("next question: %w", err)
		}
	}

	sum, _ := p.Summary()
	return sum, nil
}

func printQuestion(w io.Writer, q questions.Question, n, total int) {
	fmt.Fprintf(w, "\nQ%d/%d  [%s · %s]\n", n, total, q.Category, q.Difficulty.DisplayName())
	if q.Visual != nil && q.Visual.Pattern != "" {
		fmt.Fprintf(w, "Chart: %s\n", q.Visual.Pattern)
	}
	fmt.Fprintln(w, q.Prompt)
	switch q.Answer.(type) {
	case questions.BinaryChoice:
		fmt.Fprintln(w, "  b) BUY   s) SELL")
	default:
		for i, opt := range q.Options() {
			fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
		}
	}
}

func printFeedback(w io.Writer, res session.Outcome, mode session.Mode) {
	if res.Correct {
		fmt.Fprintln(w, "  ✓ Correct!")
	} else if mode == session.ModeRetryUntilCorrect {
		fmt.Fprintln(w, "  ✗ Not quite, try again.")
		return
	} else {
		fmt.Fprintf(w, "  ✗ Not quite. Answer: %s\n", res.Question.Answer.CorrectLabel())
	}
	if res.Question.Explanation != "" {
		fmt.Fprintf(w, "  %s\n", res.Question.Explanation)
	}
	if res.Milestone > 0 {
		fmt.Fprintf(w, "  %d in a row!\n", res.Milestone)
	}
}

func printSummary(w io.Writer, sum session.Summary, unlocked []string) {
	r := sum.Result
	fmt.Fprintf(w, "\nScore: %d/%d (%d%%) · %s\n", r.Correct, r.Total, r.Percentage, session.Grade(r.Percentage))
	if sum.Reason == session.EndAbandoned {
		fmt.Fprintln(w, "Session ended early.")
	}
	fmt.Fprintf(w, "Best streak: %d\n", sum.BestStreak)
	if sum.Attempts > r.Total {
		fmt.Fprintf(w, "First try: %d · Attempts: %d\n", sum.FirstTry, sum.Attempts)
	}
	for _, c := range sum.Categories {
		fmt.Fprintf(w, "  %-24s %d/%d\n", c.Category, c.Correct, c.Total)
	}
	if len(unlocked) > 0 {
		fmt.Fprintf(w, "Unlocked: %s\n", strings.Join(unlocked, ", "))
	}
}
