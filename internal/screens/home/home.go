package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/screens/history"
	"github.com/abhisek/stockmaster/internal/screens/lesson"
	"github.com/abhisek/stockmaster/internal/screens/picker"
	"github.com/abhisek/stockmaster/internal/screens/speed"
	"github.com/abhisek/stockmaster/internal/screens/stats"
	"github.com/abhisek/stockmaster/internal/screens/swipe"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
)

// Menu labels, in display order.
const (
	LabelPractice = "PRACTICE"
	LabelSpeed    = "SPEED CHALLENGE"
	LabelSwipe    = "BUY OR SELL"
	LabelLesson   = "DAILY LESSON"
	LabelStats    = "STATS"
	LabelHistory  = "HISTORY"
	LabelExit     = "EXIT GAME"
)

// HomeScreen is the main menu. The stats bar reads progress on every
// render so it reflects sessions finished on other screens.
type HomeScreen struct {
	env  *screens.Env
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screens.Env) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	bank := env.Bank
	empty := func(d questions.Deck) bool { return bank.Deck(d).Len() == 0 }

	items := []components.MenuItem{
		{Label: LabelPractice, Disabled: empty(questions.DeckCharts) && empty(questions.DeckIndicators),
			Action: push(func() screen.Screen { return picker.New(env) })},
		{Label: LabelSpeed, Disabled: empty(questions.DeckIndicators),
			Action: push(func() screen.Screen { return speed.New(env) })},
		{Label: LabelSwipe, Disabled: empty(questions.DeckSwipe),
			Action: push(func() screen.Screen { return swipe.New(env) })},
		{Label: LabelLesson, Disabled: empty(questions.DeckLessons),
			Action: push(func() screen.Screen { return lesson.New(env) })},
		{Label: LabelStats,
			Action: push(func() screen.Screen { return stats.New(env) })},
		{Label: LabelHistory, Disabled: env.Events == nil,
			Action: push(func() screen.Screen { return history.New(env.Events) })},
		{Label: LabelExit, Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		env:  env,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-7", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) stats() statsLine {
	lessons := h.env.Bank.Deck(questions.DeckLessons)
	st := statsLine{Day: 1, Total: progress.LessonsTotal(lessons), Balance: progress.StartingBalance}
	if p := h.env.Progress(); p != nil {
		st.Day = p.CurrentDay
		st.XP = p.XP
		st.Balance = p.Balance
		st.Profit = p.Balance - progress.StartingBalance
	}
	return st
}

// nextLesson is the title of the learner's current lesson, if any remain.
func (h *HomeScreen) nextLesson() string {
	day := 1
	if p := h.env.Progress(); p != nil {
		day = p.CurrentDay
	}
	if q, ok := h.env.Bank.Deck(questions.DeckLessons).ByDay(day); ok && q.Lesson != nil {
		return q.Lesson.Title
	}
	return ""
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 36 || width < 100
	tiny := termHeight < 28

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(MascotFor(h.env.Progress()), cw))
	}
	sections = append(sections, renderStatsBar(h.stats(), cw, compact))
	if title := h.nextLesson(); title != "" && !tiny {
		sections = append(sections, renderLessonNote(title, cw))
	}
	sections = append(sections, h.menu.View(cw, tiny))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
