package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/store"
	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// Limit is how many sessions the screen loads.
const Limit = 50

// kinds is the tab order of the kind filter. The empty kind lists all.
var kinds = []session.Kind{"", session.KindPractice, session.KindSpeed, session.KindSwipe, session.KindLesson}

type historyLoadedMsg struct {
	Kind     session.Kind
	Sessions []store.SessionSummaryRecord
	Err      error
}

// HistoryScreen lists past sessions, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	kind      int
	sessions  []store.SessionSummaryRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	kind := kinds[s.kind]
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{Kind: kind}
		}
		sessions, err := repo.QuerySessionSummaries(context.Background(),
			store.QueryOpts{Limit: Limit, Kind: string(kind)})
		return historyLoadedMsg{Kind: kind, Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Kind != kinds[s.kind] {
			return s, nil
		}
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.sessions = msg.Sessions
		s.selected = 0
		s.expanded = make(map[int]bool)
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "tab":
			s.kind = (s.kind + 1) % len(kinds)
			s.loaded = false
			return s, s.load()
		}
	}
	return s, nil
}

func kindLabel(k session.Kind) string {
	switch k {
	case "":
		return "All"
	case session.KindPractice:
		return "Practice"
	case session.KindSpeed:
		return "Speed"
	case session.KindSwipe:
		return "Swipe"
	case session.KindLesson:
		return "Lesson"
	default:
		return string(k)
	}
}

func (s *HistoryScreen) tabs(width int) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		st := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.kind {
			st = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Underline(true)
		}
		parts[i] = st.Render(kindLabel(k))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(parts, "   "))
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.tabs(width))
	b.WriteString("\n\n")

	switch {
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("Error: %s", s.errMsg)))
		return b.String()
	case !s.loaded:
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("Loading history..."))
		return b.String()
	case len(s.sessions) == 0:
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No sessions yet. Start practicing!"))
		return b.String()
	}

	for i, sess := range s.sessions {
		dateStr := sess.Timestamp.Local().Format("Jan 02, 2006")
		durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)
		accuracy := session.Percentage(sess.CorrectAnswers, sess.QuestionsServed)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-8s  %s  %d/%d  %d%%",
			prefix, dateStr, kindLabel(session.Kind(sess.Kind)), durationStr,
			sess.CorrectAnswers, sess.QuestionsServed, accuracy)
		if sess.Score > 0 {
			line += fmt.Sprintf("  %d pts", sess.Score)
		}

		style := lipgloss.NewStyle().Foreground(accuracyColor(accuracy))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s · %s · %s · #%d",
				sess.Filter, outcomeLabel(sess.Action), sess.Timestamp.Local().Format("15:04"), sess.Sequence)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func outcomeLabel(action string) string {
	switch action {
	case session.EndCompleted.Action():
		return "completed"
	case session.EndAbandoned.Action():
		return "ended early"
	case session.EndExpired.Action():
		return "time ran out"
	default:
		return action
	}
}

func accuracyColor(pct int) color.Color {
	switch {
	case pct >= 70:
		return theme.Success
	case pct >= 50:
		return theme.Accent
	default:
		return theme.Text
	}
}
