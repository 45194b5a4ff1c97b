package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

type centerFunc func(lipgloss.Style, string) string

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := func(st lipgloss.Style, text string) string {
		return st.Width(cw).Align(lipgloss.Center).Render(text)
	}

	var sections []string
	switch {
	case s.total == 0:
		sections = append(sections, center(lipgloss.NewStyle().Foreground(theme.Error), "No lessons are available."))
	case s.stage == stageDone:
		sections = s.tradeView(center, cw)
	case s.stage == stageTheory:
		sections = s.theoryView(center, cw)
	case s.stage == stageChallenge:
		sections = s.challengeView(center, cw)
	default:
		sections = s.introView(center, cw)
	}
	if s.errMsg != "" {
		sections = append(sections, center(lipgloss.NewStyle().Foreground(theme.Error), s.errMsg))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

// phaseLine names the phase a lesson belongs to, or "" when the bank
// has no phase metadata.
func (s *LessonScreen) phaseLine(l *questions.Lesson) string {
	p, ok := s.env.Bank.Phase(l.Phase)
	if !ok {
		return ""
	}
	return fmt.Sprintf("PHASE %d · %s · %s", p.ID+1, strings.ToUpper(p.Name), p.Tagline)
}

func (s *LessonScreen) introView(center centerFunc, cw int) []string {
	q, ok := s.current()
	if !ok {
		return []string{center(lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("Lesson for day %d is missing.", s.day))}
	}
	l := q.Lesson

	var out []string
	if s.allDone() {
		out = append(out, center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
			"Curriculum complete! Replay any day."))
	}
	if line := s.phaseLine(l); line != "" {
		out = append(out, center(lipgloss.NewStyle().Foreground(theme.ArcadeCyan), line))
	}
	out = append(out,
		center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), fmt.Sprintf("DAY %d of %d", l.Day, s.total)),
		center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), l.Title),
	)

	body := fmt.Sprintf("Today's trade: %s\nBuy at %s", l.Trade.Stock, layout.FormatMoney(l.Trade.BuyPrice))
	if l.Day < s.unlocked || s.allDone() {
		body += "  (replay)"
	}
	body += "\n\nPass the quiz and the challenge to make the trade."
	if l.Badge != "" {
		body += fmt.Sprintf("\nFinishing this day earns the %s badge.", l.Badge)
	}
	out = append(out, components.ArcadeCard(body, cw))
	return out
}

func (s *LessonScreen) theoryView(center centerFunc, cw int) []string {
	l := s.lesson
	title := l.Theory.Title
	if title == "" {
		title = l.Title
	}

	out := []string{center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
		fmt.Sprintf("DAY %d · %s", l.Day, strings.ToUpper(title)))}

	var points strings.Builder
	for i, p := range l.Theory.Points {
		if i > 0 {
			points.WriteString("\n")
		}
		points.WriteString("• " + p)
	}
	if points.Len() > 0 {
		out = append(out, lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(points.String()))
	}
	if l.Theory.KeyTerm != "" {
		term := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(l.Theory.KeyTerm)
		out = append(out, components.TitledCard("KEY TERM", term+"\n"+l.Theory.KeyTermDef, cw))
	}
	return out
}

func (s *LessonScreen) challengeView(center centerFunc, cw int) []string {
	c := s.lesson.Challenge
	title := "CHALLENGE"
	if c.Title != "" {
		title += " · " + strings.ToUpper(c.Title)
	}
	out := []string{center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), title)}

	body := c.Scenario
	if rows := priceRows(c.PriceData); rows != "" {
		body += "\n\n" + rows
	}
	out = append(out,
		components.ArcadeCard(body, cw),
		center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), c.Prompt),
		s.choices.View(),
	)

	if s.choices.Revealed() {
		if s.solved {
			out = append(out,
				center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true), "Correct!"),
				center(lipgloss.NewStyle().Foreground(theme.TextDim), c.Explanation))
		} else {
			out = append(out, center(lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
				"Not quite. Press any key to try again."))
		}
	}
	return out
}

// priceRows lays out a challenge's price data, marking each move against
// the previous priced row.
func priceRows(data []questions.PricePoint) string {
	var b strings.Builder
	prev := 0
	for i, p := range data {
		if i > 0 {
			b.WriteString("\n")
		}
		if p.Price == 0 {
			fmt.Fprintf(&b, "%-14s %s", p.Label, p.Note)
			continue
		}
		arrow := " "
		switch {
		case prev != 0 && p.Price > prev:
			arrow = lipgloss.NewStyle().Foreground(theme.Bull).Render("▲")
		case prev != 0 && p.Price < prev:
			arrow = lipgloss.NewStyle().Foreground(theme.Bear).Render("▼")
		}
		fmt.Fprintf(&b, "%-14s %10s %s", p.Label, layout.FormatMoney(p.Price), arrow)
		if p.Note != "" {
			b.WriteString("  " + p.Note)
		}
		prev = p.Price
	}
	return b.String()
}

func (s *LessonScreen) tradeView(center centerFunc, cw int) []string {
	res := s.result
	out := []string{center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
		fmt.Sprintf("DAY %d COMPLETE", res.Day))}

	var body strings.Builder
	if t := res.Trade; t != nil {
		fmt.Fprintf(&body, "%s: bought %s, sold %s\n", t.Stock,
			layout.FormatMoney(t.BuyPrice), layout.FormatMoney(t.SellPrice))
		fmt.Fprintf(&body, "Profit %s\n", components.Profit(t.Profit))
	} else {
		body.WriteString("Practice trade, no money changed hands.\n")
	}
	fmt.Fprintf(&body, "+%d XP", res.XP)
	if p := s.env.Progress(); p != nil {
		fmt.Fprintf(&body, "\nBalance: %s", layout.FormatMoney(p.Balance))
	}
	out = append(out, components.ArcadeCard(body.String(), cw))

	if u := s.lesson.Theory.Unlock; u != "" {
		out = append(out, center(lipgloss.NewStyle().Foreground(theme.TextDim), u))
	}
	if len(res.Achievements) > 0 {
		out = append(out, center(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true),
			"Unlocked: "+strings.Join(res.Achievements, ", ")))
	}
	return out
}
