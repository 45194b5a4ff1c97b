// Package picker lets the learner choose what to practice.
package picker

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/screens/practice"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// Counts are the session lengths on offer.
var Counts = []int{5, 10, 15, 20}

// practiceDecks are the decks a practice session can draw from.
var practiceDecks = []questions.Deck{questions.DeckCharts, questions.DeckIndicators}

const (
	rowDeck = iota
	rowFilter
	rowCount
	rowMode
	rowStart
	numRows
)

// PickerScreen chooses deck, filter, count and mode, then starts a session.
type PickerScreen struct {
	env *screens.Env

	row     int
	deck    int
	filters []session.Filter
	filter  int
	count   int
	retry   bool
	errMsg  string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker preset to the configured question count.
func New(env *screens.Env) *PickerScreen {
	p := &PickerScreen{env: env}
	if i := slices.Index(Counts, env.Count()); i >= 0 {
		p.count = i
	} else {
		p.count = 1
	}
	p.loadFilters()
	return p
}

func (p *PickerScreen) Init() tea.Cmd { return nil }

func (p *PickerScreen) Title() string { return "Practice" }

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) repo() *questions.Repository {
	return p.env.Bank.Deck(practiceDecks[p.deck])
}

// loadFilters lists the filters that make sense for the selected deck.
func (p *PickerScreen) loadFilters() {
	repo := p.repo()
	filters := []session.Filter{session.AllQuestions()}
	cats := repo.Categories()
	for _, c := range cats {
		filters = append(filters, session.InCategory(c))
	}
	for _, g := range questions.PatternGroups() {
		if !slices.Contains(cats, g) && len(repo.ByGroup(g)) > 0 {
			filters = append(filters, session.InGroup(g))
		}
	}
	for _, d := range questions.AllDifficulties() {
		filters = append(filters, session.AtDifficulty(d))
	}
	p.filters = filters
	p.filter = 0
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "esc":
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		p.row = (p.row + numRows - 1) % numRows
	case "down", "j", "tab":
		p.row = (p.row + 1) % numRows
	case "left", "h":
		p.change(-1)
	case "right", "l", " ", "space":
		p.change(1)
	case "enter":
		return p, p.start()
	}
	return p, nil
}

func (p *PickerScreen) change(delta int) {
	p.errMsg = ""
	wrap := func(i, n int) int { return ((i+delta)%n + n) % n }
	switch p.row {
	case rowDeck:
		p.deck = wrap(p.deck, len(practiceDecks))
		p.loadFilters()
	case rowFilter:
		p.filter = wrap(p.filter, len(p.filters))
	case rowCount:
		p.count = wrap(p.count, len(Counts))
	case rowMode:
		p.retry = !p.retry
	}
}

// Selection returns the current choice.
func (p *PickerScreen) Selection() (questions.Deck, session.Filter, int, session.Mode) {
	mode := session.ModeScoreAndProceed
	if p.retry {
		mode = session.ModeRetryUntilCorrect
	}
	return practiceDecks[p.deck], p.filters[p.filter], Counts[p.count], mode
}

// start samples a session. An empty pool keeps the learner here.
func (p *PickerScreen) start() tea.Cmd {
	_, f, count, mode := p.Selection()
	pr := session.NewPractice(p.repo(), p.env.Options(session.WithMode(mode))...)
	if err := pr.Start(context.Background(), f, count); err != nil {
		if session.IsEmptyPool(err) {
			p.errMsg = "No questions available for " + f.Label()
		} else {
			p.errMsg = err.Error()
		}
		p.env.Log().Debug("practice start failed", "filter", f.String(), "err", err)
		return nil
	}
	next := practice.New(p.env, pr, practice.WithTitle("Practice · "+f.Label()))
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (p *PickerScreen) View(width, height int) string {
	deck, f, count, mode := p.Selection()
	modeLabel := "Score & move on"
	if mode == session.ModeRetryUntilCorrect {
		modeLabel = "Retry until correct"
	}

	rows := []struct{ name, value string }{
		{"Deck", deck.DisplayName()},
		{"Topic", fmt.Sprintf("%s (%d)", f.Label(), len(f.Pool(p.repo())))},
		{"Questions", fmt.Sprintf("%d", count)},
		{"Mode", modeLabel},
	}

	cw := components.ContentWidth(width)
	var lines []string
	for i, r := range rows {
		name := lipgloss.NewStyle().Width(12).Foreground(theme.TextDim).Render(r.name)
		value := "  " + r.value + "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == p.row {
			value = "◀ " + r.value + " ▶"
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, name+style.Render(value))
	}
	form := lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n\n"))

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.ArcadeYellow).Bold(true).
			Render("CHOOSE YOUR PRACTICE"),
		form,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(components.ArcadeButton("START", p.row == rowStart, 20)),
	}
	if p.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.Error).Render(p.errMsg))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
