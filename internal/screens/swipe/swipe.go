// Package swipe is the BUY or SELL scenario game.
package swipe

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/games"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// SwipeScreen plays one swipe game.
type SwipeScreen struct {
	env  *screens.Env
	game *games.Swipe

	last   *games.SwipeOutcome
	result *games.SwipeResult
	errMsg string
}

var _ screen.Screen = (*SwipeScreen)(nil)
var _ screen.KeyHintProvider = (*SwipeScreen)(nil)
var _ screen.BackHandler = (*SwipeScreen)(nil)

// New starts a game over the swipe deck.
func New(env *screens.Env) *SwipeScreen {
	s := &SwipeScreen{
		env:  env,
		game: games.NewSwipe(env.Bank.Deck(questions.DeckSwipe), env.Options()...),
	}
	s.begin(s.game.Start)
	return s
}

func (s *SwipeScreen) begin(start func(context.Context) error) {
	s.last, s.result = nil, nil
	if err := start(context.Background()); err != nil {
		if session.IsEmptyPool(err) {
			s.errMsg = "No scenarios available."
		} else {
			s.errMsg = err.Error()
		}
	}
}

func (s *SwipeScreen) Init() tea.Cmd { return nil }

func (s *SwipeScreen) Title() string { return "Buy or Sell" }

func (s *SwipeScreen) HandlesBack() bool { return true }

func (s *SwipeScreen) KeyHints() []layout.KeyHint {
	if s.result != nil || s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Play again"},
			{Key: "Enter", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "←/B", Description: "Buy"},
		{Key: "→/S", Description: "Sell"},
		{Key: "Esc", Description: "Stop"},
	}
}

func (s *SwipeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	ctx := context.Background()
	key := kmsg.String()

	if s.errMsg != "" {
		return s, pop
	}
	if s.result != nil {
		switch key {
		case "r", "R":
			s.begin(s.game.Restart)
		case "enter", "esc", "q":
			return s, pop
		}
		return s, nil
	}

	var side questions.Side
	switch key {
	case "b", "B", "left", "h":
		side = questions.Buy
	case "s", "S", "right", "l":
		side = questions.Sell
	case "esc":
		if _, ok := s.game.Quit(ctx); ok {
			s.finish()
		}
		return s, nil
	default:
		return s, nil
	}

	out, err := s.game.Answer(ctx, side)
	if err != nil {
		s.env.Log().Warn("swipe answer failed", "error", err)
		return s, nil
	}
	s.last = &out
	if out.Done {
		s.finish()
	}
	return s, nil
}

func (s *SwipeScreen) finish() {
	if res, ok := s.game.Result(); ok {
		s.result = &res
	}
}

func (s *SwipeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n\n" + s.errMsg + "\n\nPress any key to go back.")
	}
	if s.result != nil {
		return s.resultView(width, height)
	}

	q, ok := s.game.Current()
	if !ok {
		return ""
	}
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style, text string) string {
		return st.Width(cw).Align(lipgloss.Center).Render(text)
	}

	status := fmt.Sprintf("Scenario %d/%d    Score %d", s.game.Index()+1, s.game.Len(), s.game.Score())
	if n := s.game.Streak(); n > 1 {
		status += fmt.Sprintf("    🔥 %d", n)
	}

	sections := []string{
		center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), status),
		components.ArcadeCard(q.Prompt, cw),
		center(lipgloss.NewStyle(),
			lipgloss.NewStyle().Foreground(theme.Bull).Bold(true).Render("← BUY")+
				"        "+
				lipgloss.NewStyle().Foreground(theme.Bear).Bold(true).Render("SELL →")),
	}

	if s.last != nil {
		var line string
		if s.last.Correct {
			line = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ +%d", s.last.Points))
		} else {
			line = lipgloss.NewStyle().Foreground(theme.Error).
				Render("✗ The right call was " + s.last.Question.Answer.CorrectLabel())
		}
		if exp := s.last.Question.Explanation; exp != "" {
			line += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(cw).Render(exp)
		}
		sections = append(sections, center(lipgloss.NewStyle(), line))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *SwipeScreen) resultView(width, height int) string {
	res := s.result
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style, text string) string {
		return st.Width(cw).Align(lipgloss.Center).Render(text)
	}

	body := fmt.Sprintf("Score: %d (%d%%)\nCorrect: %d/%d\nAccuracy: %d%%",
		res.Score, res.ScorePercentage, res.Correct, res.Total, res.Accuracy)
	if p := s.env.Progress(); p != nil {
		body += fmt.Sprintf("\nBest: %d", p.BestScores[session.KindSwipe])
	}

	sections := []string{
		center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), "Game over"),
		components.ArcadeCard(body, cw),
		center(lipgloss.NewStyle().Foreground(theme.TextDim), "R to play again · Enter for home"),
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func pop() tea.Msg { return router.PopScreenMsg{} }
