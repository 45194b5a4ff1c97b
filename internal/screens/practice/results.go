package practice

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// ResultsScreen shows how a practice session went.
type ResultsScreen struct {
	env      *screens.Env
	practice *session.Practice
	summary  session.Summary
	unlocked []string
	errMsg   string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// NewResults builds the results for sum. p is kept so the learner can
// play again with the same filter.
func NewResults(env *screens.Env, p *session.Practice, sum session.Summary) *ResultsScreen {
	r := &ResultsScreen{env: env, practice: p, summary: sum}
	if env != nil && env.Tracker != nil {
		r.unlocked = env.Tracker.LastUnlocked()
	}
	return r
}

func (r *ResultsScreen) Init() tea.Cmd { return nil }

func (r *ResultsScreen) Title() string { return "Results" }

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Practice again"},
		{Key: "Enter", Description: "Home"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "r", "R":
		if err := r.practice.Restart(context.Background()); err != nil {
			r.errMsg = err.Error()
			return r, nil
		}
		next := New(r.env, r.practice)
		return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "enter", "esc", "q":
		return r, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	sum := r.summary
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style, text string) string {
		return st.Width(cw).Align(lipgloss.Center).Render(text)
	}

	var sections []string

	heading := "Session complete!"
	switch sum.Reason {
	case session.EndAbandoned:
		heading = "Session ended early"
	case session.EndExpired:
		heading = "Time's up!"
	}
	sections = append(sections, center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), heading))

	grade := session.Grade(sum.Result.Percentage)
	sections = append(sections, center(lipgloss.NewStyle().Foreground(gradeColor(sum.Result.Percentage)).Bold(true),
		fmt.Sprintf("%d%%  ·  %s", sum.Result.Percentage, grade)))

	stats := fmt.Sprintf("Correct: %d/%d    Best streak: %d    Time: %s",
		sum.Result.Correct, sum.Result.Total, sum.BestStreak, formatDuration(sum.Elapsed))
	if sum.Attempts > sum.Result.Total {
		stats += fmt.Sprintf("\nFirst try: %d    Attempts: %d", sum.FirstTry, sum.Attempts)
	}
	sections = append(sections, components.ArcadeCard(stats, cw))

	if len(sum.Categories) > 0 {
		var lines []string
		for _, c := range sum.Categories {
			pct := session.Percentage(c.Correct, c.Total)
			lines = append(lines, fmt.Sprintf("%-24s %2d/%-2d %3d%%", c.Category, c.Correct, c.Total, pct))
		}
		sections = append(sections,
			center(lipgloss.NewStyle().Foreground(theme.TextDim), "By category"),
			center(lipgloss.NewStyle().Foreground(theme.Text), strings.Join(lines, "\n")))
	}

	if len(r.unlocked) > 0 {
		sections = append(sections, center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
			"Unlocked: "+strings.Join(r.unlocked, ", ")))
	}

	if r.errMsg != "" {
		sections = append(sections, center(lipgloss.NewStyle().Foreground(theme.Error), r.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func gradeColor(pct int) color.Color {
	switch {
	case pct >= 90:
		return theme.ArcadeYellow
	case pct >= 70:
		return theme.Success
	case pct >= 50:
		return theme.Secondary
	default:
		return theme.Accent
	}
}

func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
