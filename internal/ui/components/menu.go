package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Disabled items are shown dimmed and
// skipped by navigation.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of arcade buttons. Navigation wraps around,
// and the digits 1-9 jump straight to an item and activate it.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step finds the next enabled item from i in direction dir, wrapping.
// It returns -1 when every item is disabled.
func (m Menu) step(i, dir int) int {
	n := len(m.Items)
	for range n {
		i = (i + dir + n) % n
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Current returns the selected item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
		return m, nil
	case "down", "j", "tab":
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
		return m, nil
	case "enter":
		return m, m.activate()
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Items) && !m.Items[n-1].Disabled {
		m.Selected = n - 1
		return m, m.activate()
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	item, ok := m.Current()
	if !ok || item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// menuButtonWidth is the fixed width of a bordered menu button.
const menuButtonWidth = 22

// View renders the items centred in width. compact drops the button
// borders for short terminals.
func (m Menu) View(width int, compact bool) string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		if compact {
			lines[i] = m.compactLine(i, item)
			continue
		}
		if item.Disabled {
			lines[i] = lipgloss.NewStyle().
				Width(menuButtonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(item.Label)
			continue
		}
		lines[i] = ArcadeButton(item.Label, i == m.Selected, menuButtonWidth)
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func (m Menu) compactLine(i int, item MenuItem) string {
	switch {
	case item.Disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + item.Label)
	case i == m.Selected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + item.Label + " ")
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + item.Label)
	}
}
