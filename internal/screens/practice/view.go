package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	q, ok := s.practice.Current()
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Wrapping up...")
	}

	sess := s.practice.Session()
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s · %s", q.Category, q.Difficulty.DisplayName()))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %s %d",
			sess.Index()+1, sess.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			sess.Correct(),
			lipgloss.NewStyle().Foreground(theme.Accent).Render("streak"),
			sess.Streak(),
		))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", s.practice.Progress(), false, width-4).View())
	b.WriteString("\n\n")

	if chart := components.RenderChart(q.Visual); chart != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, chart))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))

	if s.outcome != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(width, *s.outcome, sess.Mode()))
	}
	return b.String()
}

func renderFeedback(width int, out session.Outcome, mode session.Mode) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text) + "\n"
	}

	var b strings.Builder
	if out.Correct {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true), "Correct!"))
	} else {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Bold(true), "Not quite"))
		if mode == session.ModeScoreAndProceed {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
				"Correct answer: "+out.Question.Answer.CorrectLabel()))
		}
	}

	if exp := out.Question.Explanation; exp != "" {
		b.WriteString("\n")
		expStyle := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, expStyle.Render(exp)))
		b.WriteString("\n")
	}

	if out.Milestone > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
			fmt.Sprintf("%d in a row!", out.Milestone)))
	}

	hint := "Press any key to continue..."
	if !out.Correct && mode == session.ModeRetryUntilCorrect {
		hint = "Press any key to try again..."
	}
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), hint))
	return b.String()
}

func renderQuitConfirm(width int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}
	return "\n\n\n" + strings.Join([]string{
		center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End session early?"),
		center(lipgloss.NewStyle().Foreground(theme.TextDim), "Answers so far still count."),
		"",
		center(lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end session"),
		center(lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"),
	}, "\n")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
