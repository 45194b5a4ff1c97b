// Package speed is the timed indicator quiz.
package speed

import (
	"context"
	"fmt"
	"strings"
	"time"

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

// tickMsg carries the run it was scheduled for so ticks from a previous
// run are dropped after a restart.
type tickMsg struct {
	run int
}

// SpeedScreen runs a speed challenge.
type SpeedScreen struct {
	env  *screens.Env
	game *games.Speed

	run       int
	remaining time.Duration
	choices   components.ChoiceList
	last      *games.SpeedOutcome
	summary   *session.Summary
	errMsg    string
}

var _ screen.Screen = (*SpeedScreen)(nil)
var _ screen.KeyHintProvider = (*SpeedScreen)(nil)
var _ screen.BackHandler = (*SpeedScreen)(nil)

// New starts a challenge over the indicator deck.
func New(env *screens.Env) *SpeedScreen {
	deck := env.Bank.Deck(questions.DeckIndicators)
	s := &SpeedScreen{
		env:  env,
		game: games.NewSpeed(deck, env.SpeedClock(), env.Options()...),
	}
	s.begin(s.game.Start)
	return s
}

func (s *SpeedScreen) begin(start func(context.Context) error) {
	if err := start(context.Background()); err != nil {
		if session.IsEmptyPool(err) {
			s.errMsg = "No questions available for the speed challenge."
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	s.run++
	s.remaining = s.game.Duration()
	s.last = nil
	s.summary = nil
	s.loadQuestion()
}

func (s *SpeedScreen) Init() tea.Cmd {
	if s.errMsg != "" {
		return nil
	}
	return s.tick()
}

func (s *SpeedScreen) tick() tea.Cmd {
	run := s.run
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{run: run} })
}

func (s *SpeedScreen) Title() string { return "Speed Challenge" }

func (s *SpeedScreen) HandlesBack() bool { return true }

func (s *SpeedScreen) KeyHints() []layout.KeyHint {
	if s.summary != nil || s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Play again"},
			{Key: "Enter", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "Esc", Description: "Give up"},
	}
}

func (s *SpeedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case tickMsg:
		if msg.run != s.run || s.summary != nil {
			return s, nil
		}
		s.remaining -= time.Second
		if s.game.Tick(ctx, s.remaining) {
			s.finish()
			return s, nil
		}
		return s, s.tick()

	case tea.KeyMsg:
		key := msg.String()
		if s.errMsg != "" {
			return s, pop
		}
		if s.summary != nil {
			switch key {
			case "r", "R":
				s.begin(s.game.Restart)
				return s, s.tick()
			case "enter", "esc", "q":
				return s, pop
			}
			return s, nil
		}
		if key == "esc" {
			if _, ok := s.game.Quit(ctx); ok {
				s.finish()
			}
			return s, nil
		}

		choices, c, answered := s.choices.Update(msg)
		s.choices = choices
		if !answered {
			return s, nil
		}
		out, err := s.game.Answer(ctx, c)
		if err != nil {
			return s, nil
		}
		s.last = &out
		if out.Done {
			s.finish()
			return s, nil
		}
		s.loadQuestion()
	}
	return s, nil
}

func (s *SpeedScreen) finish() {
	if sum, ok := s.game.Summary(); ok {
		s.summary = &sum
	}
}

func (s *SpeedScreen) loadQuestion() {
	if q, ok := s.game.Current(); ok {
		s.choices = components.NewChoiceList(q)
	}
}

func (s *SpeedScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n\n" + s.errMsg + "\n\nPress any key to go back.")
	}
	if s.summary != nil {
		return s.resultView(width, height)
	}

	q, ok := s.game.Current()
	if !ok {
		return ""
	}

	left := float64(s.remaining) / float64(s.game.Duration())
	clock := fmt.Sprintf("⏱ %ds", int(s.remaining/time.Second))
	status := fmt.Sprintf("%s    Score %d    Q %d/%d", clock, s.game.Score(), s.game.Index()+1, s.game.Len())

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.ArcadeYellow).Bold(true).Render(status))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewCountdownBar("", left, min(width-8, 60)).View()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))

	if s.last != nil {
		b.WriteString("\n")
		line := lipgloss.NewStyle().Foreground(theme.Error).Render("✗ " + s.last.Question.Answer.CorrectLabel())
		if s.last.Correct {
			line = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("✓ +%d", s.last.Points))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	}
	return b.String()
}

func (s *SpeedScreen) resultView(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style, text string) string {
		return st.Width(cw).Align(lipgloss.Center).Render(text)
	}

	heading := "Challenge complete!"
	switch sum.Reason {
	case session.EndExpired:
		heading = "Time's up!"
	case session.EndAbandoned:
		heading = "Challenge abandoned"
	}

	body := fmt.Sprintf("Score: %d\nCorrect: %d/%d answered (%d%%)",
		sum.Points, sum.Result.Correct, sum.Result.Total, sum.Result.Percentage)
	if p := s.env.Progress(); p != nil {
		body += fmt.Sprintf("\nBest: %d", p.BestScores[session.KindSpeed])
	}

	sections := []string{
		center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), heading),
		components.ArcadeCard(body, cw),
		center(lipgloss.NewStyle().Foreground(theme.TextDim), "R to play again · Enter for home"),
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func pop() tea.Msg { return router.PopScreenMsg{} }
