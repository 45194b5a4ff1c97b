package components

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// ChoiceList shows the options of one question and turns key presses
// into a questions.Choice. Multiple-choice options answer to 1-9, binary
// questions to b/s or the left/right arrows.
type ChoiceList struct {
	Options  []string
	Selected int
	Binary   bool

	revealed bool
	chosen   int
	correct  int
}

// NewChoiceList builds the list for q.
func NewChoiceList(q questions.Question) ChoiceList {
	c := ChoiceList{Options: q.Options(), chosen: -1, correct: -1}
	switch a := q.Answer.(type) {
	case questions.MultipleChoice:
		c.correct = a.Correct
	case questions.BinaryChoice:
		c.Binary = true
		if a.Correct == questions.Sell {
			c.correct = 1
		} else {
			c.correct = 0
		}
	}
	return c
}

// Update handles navigation. It reports the chosen answer once the
// learner commits to one; further keys are ignored after Reveal.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, questions.Choice, bool) {
	if c.revealed || len(c.Options) == 0 {
		return c, questions.Choice{}, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, questions.Choice{}, false
	}

	key := kmsg.String()
	if c.Binary {
		switch key {
		case "b", "B", "left", "h":
			c.Selected = 0
			return c.commit()
		case "s", "S", "right", "l":
			c.Selected = 1
			return c.commit()
		}
	} else if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(c.Options) {
		c.Selected = n - 1
		return c.commit()
	}

	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		return c.commit()
	}
	return c, questions.Choice{}, false
}

func (c ChoiceList) commit() (ChoiceList, questions.Choice, bool) {
	c.chosen = c.Selected
	if c.Binary {
		side := questions.Buy
		if c.Selected == 1 {
			side = questions.Sell
		}
		return c, questions.ChooseSide(side), true
	}
	return c, questions.ChooseIndex(c.Selected), true
}

// Reveal freezes the list and colours the chosen and correct options.
func (c *ChoiceList) Reveal() {
	c.revealed = true
}

// Revealed reports whether the answer has been shown.
func (c ChoiceList) Revealed() bool { return c.revealed }

// Reset clears the reveal so the same question can be answered again.
func (c *ChoiceList) Reset() {
	c.revealed = false
	c.chosen = -1
}

// View renders the options.
func (c ChoiceList) View() string {
	if c.Binary {
		return c.binaryView()
	}

	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)
		b.WriteString(c.optionStyle(i).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (c ChoiceList) binaryView() string {
	side := func(i int, label string, fg color.Color) string {
		st := lipgloss.NewStyle().
			Padding(0, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(fg).
			Foreground(fg)
		switch {
		case c.revealed && i == c.correct:
			st = st.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case c.revealed && i == c.chosen:
			st = st.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
		case c.revealed:
			st = st.BorderForeground(theme.Border).Foreground(theme.TextDim)
		case i == c.Selected:
			st = st.Bold(true)
		}
		return st.Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		side(0, "◀ [B] BUY", theme.Bull),
		"   ",
		side(1, "SELL [S] ▶", theme.Bear),
	)
}

func (c ChoiceList) optionStyle(i int) lipgloss.Style {
	switch {
	case c.revealed && i == c.correct:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case c.revealed && i == c.chosen:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	case c.revealed:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	case i == c.Selected:
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(theme.Text)
	}
}
