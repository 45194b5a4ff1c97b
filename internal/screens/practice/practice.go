// Package practice is the question-by-question quiz screen and its
// results screen. Lessons reuse it in retry-until-correct mode.
package practice

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
)

// Option configures a PracticeScreen.
type Option func(*PracticeScreen)

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(s *PracticeScreen) { s.title = title }
}

// OnComplete replaces the results screen with fn once every question is
// answered.
func OnComplete(fn func(session.Summary) tea.Cmd) Option {
	return func(s *PracticeScreen) { s.onComplete = fn }
}

// PracticeScreen asks the questions of a started session.
type PracticeScreen struct {
	env      *screens.Env
	practice *session.Practice

	choices     components.ChoiceList
	outcome     *session.Outcome
	confirmQuit bool
	errMsg      string

	title      string
	onComplete func(session.Summary) tea.Cmd
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.BackHandler = (*PracticeScreen)(nil)

// New shows p, which must already be started.
func New(env *screens.Env, p *session.Practice, opts ...Option) *PracticeScreen {
	s := &PracticeScreen{env: env, practice: p, title: "Practice"}
	for _, o := range opts {
		o(s)
	}
	s.loadQuestion()
	return s
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	return s.title
}

func (s *PracticeScreen) HandlesBack() bool { return true }

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.choices.Binary:
		return []layout.KeyHint{
			{Key: "B/←", Description: "Buy"},
			{Key: "S/→", Description: "Sell"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()
	ctx := context.Background()

	if s.errMsg != "" {
		return s, pop
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			sum, ok := s.practice.EndEarly(ctx)
			if !ok {
				return s, pop
			}
			return s, s.showResults(sum)
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	// Feedback: any key moves on.
	if s.outcome != nil {
		return s, s.next(ctx)
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	choices, c, answered := s.choices.Update(msg)
	s.choices = choices
	if !answered {
		return s, nil
	}

	out, err := s.practice.Submit(ctx, c)
	if err != nil {
		if errors.Is(err, session.ErrOutOfRangeChoice) {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}
	s.outcome = &out
	s.choices.Reveal()
	return s, nil
}

func (s *PracticeScreen) next(ctx context.Context) tea.Cmd {
	if err := s.practice.Next(ctx); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.outcome = nil
	if !s.practice.Active() {
		sum, _ := s.practice.Summary()
		if s.onComplete != nil {
			return s.onComplete(sum)
		}
		return s.showResults(sum)
	}
	s.loadQuestion()
	return nil
}

func (s *PracticeScreen) showResults(sum session.Summary) tea.Cmd {
	results := NewResults(s.env, s.practice, sum)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} }
}

func (s *PracticeScreen) loadQuestion() {
	if q, ok := s.practice.Current(); ok {
		s.choices = components.NewChoiceList(q)
	}
}

func pop() tea.Msg { return router.PopScreenMsg{} }
