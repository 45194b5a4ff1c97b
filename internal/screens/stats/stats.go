// Package stats shows the learner's portfolio, best scores and lifetime
// accuracy per category.
package stats

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/store"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// recentTrades is how many trades the portfolio card lists.
const recentTrades = 5

type accuracyLoadedMsg struct {
	Stats []store.CategoryStat
	Err   error
}

// StatsScreen is read-only; the category tally loads in the background.
type StatsScreen struct {
	env      *screens.Env
	accuracy []store.CategoryStat
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

func New(env *screens.Env) *StatsScreen {
	return &StatsScreen{env: env}
}

func (s *StatsScreen) Init() tea.Cmd {
	repo := s.env.Events
	return func() tea.Msg {
		if repo == nil {
			return accuracyLoadedMsg{}
		}
		st, err := repo.CategoryAccuracy(context.Background())
		return accuracyLoadedMsg{Stats: st, Err: err}
	}
}

func (s *StatsScreen) Title() string { return "Stats" }

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case accuracyLoadedMsg:
		s.loaded = true
		s.accuracy = msg.Stats
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)

	p := s.env.Progress()
	if p == nil {
		return components.CabinetFrame(
			lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).
				Render("No progress yet. Play a round first!"), width, height)
	}

	sections := []string{
		components.TitledCard("PORTFOLIO", s.portfolio(p), cw),
		components.TitledCard("BEST SCORES", bestScores(p), cw),
		components.TitledCard("ACCURACY BY TOPIC", s.topics(cw), cw),
	}
	if len(p.Achievements) > 0 {
		sections = append(sections,
			heading.Render("ACHIEVEMENTS"),
			lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Width(cw).Render(strings.Join(p.Achievements, "  ")))
	}
	return components.CabinetFrame(strings.Join(sections, "\n"), width, height)
}

func (s *StatsScreen) portfolio(p *progress.Progress) string {
	st := progress.CalculateStats(p)
	total := progress.LessonsTotal(s.env.Bank.Deck(questions.DeckLessons))

	profitColor := theme.Bull
	if st.TotalProfit < 0 {
		profitColor = theme.Bear
	}

	var b strings.Builder
	if p.Name != "" {
		fmt.Fprintf(&b, "Trader: %s\n", p.Name)
	}
	day := fmt.Sprintf("Day %d", p.CurrentDay)
	if total > 0 {
		day = fmt.Sprintf("Day %d of %d", min(p.CurrentDay, total), total)
	}
	fmt.Fprintf(&b, "%s · %d XP · %d day streak\n", day, p.XP, p.Streak)
	fmt.Fprintf(&b, "Balance: %s ", layout.FormatMoney(p.Balance))
	b.WriteString(lipgloss.NewStyle().Foreground(profitColor).
		Render(fmt.Sprintf("(%+.2f%%)", st.ProfitPercentage)))
	fmt.Fprintf(&b, "\nTrades: %d · %d%% profitable", st.TradesCount, st.Accuracy)

	trades := p.Trades
	if len(trades) > recentTrades {
		trades = trades[len(trades)-recentTrades:]
	}
	for _, t := range slices.Backward(trades) {
		fmt.Fprintf(&b, "\n  Day %-2d %-10s %s", t.Day, t.Stock, components.Profit(t.Profit))
	}
	return b.String()
}

func bestScores(p *progress.Progress) string {
	rows := []struct {
		kind  session.Kind
		label string
		unit  string
	}{
		{session.KindPractice, "Practice", "%"},
		{session.KindSpeed, "Speed Challenge", " pts"},
		{session.KindSwipe, "Buy or Sell", " pts"},
	}
	var lines []string
	for _, r := range rows {
		v, ok := p.BestScores[r.kind]
		val := "-"
		if ok {
			val = fmt.Sprintf("%d%s", v, r.unit)
		}
		lines = append(lines, fmt.Sprintf("%-16s %s", r.label, val))
	}
	return strings.Join(lines, "\n")
}

func (s *StatsScreen) topics(cw int) string {
	switch {
	case s.errMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)
	case !s.loaded:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading...")
	case len(s.accuracy) == 0:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No answers recorded yet.")
	}

	barWidth := max(cw-40, 10)
	var lines []string
	for _, c := range s.accuracy {
		pct := session.Percentage(c.Correct, c.Total)
		bar := components.ProgressBar{Width: barWidth, Percent: float64(pct) / 100}
		lines = append(lines, fmt.Sprintf("%-22s %s %3d%% (%d)", c.Category, bar.View(), pct, c.Total))
	}
	return strings.Join(lines, "\n")
}
