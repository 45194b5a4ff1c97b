package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stockmaster/internal/questions"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func TestChoiceList_MultipleChoiceKeys(t *testing.T) {
	q := questions.Question{
		ID:     "rsi",
		Answer: questions.MultipleChoice{Options: []string{"30", "50", "70"}, Correct: 2},
	}
	c := NewChoiceList(q)

	c, _, done := c.Update(key('9'))
	if done {
		t.Fatal("an out-of-range digit should not answer")
	}
	c, _, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if c.Selected != 1 {
		t.Errorf("Selected = %d, want 1", c.Selected)
	}
	c, choice, done := c.Update(key('3'))
	if !done || choice != questions.ChooseIndex(2) {
		t.Errorf("choice = %v, done = %v", choice, done)
	}

	c.Reveal()
	if _, _, done := c.Update(key('1')); done {
		t.Error("a revealed list must ignore keys")
	}
	if !strings.Contains(c.View(), "70") {
		t.Error("view is missing an option")
	}
}

func TestChoiceList_BinaryKeys(t *testing.T) {
	q := questions.Question{ID: "s", Answer: questions.BinaryChoice{Correct: questions.Sell}}
	c := NewChoiceList(q)

	if _, choice, done := c.Update(key('s')); !done || choice != questions.ChooseSide(questions.Sell) {
		t.Errorf("s gave %v, %v", choice, done)
	}
	if _, choice, done := c.Update(tea.KeyPressMsg{Code: tea.KeyLeft}); !done || choice != questions.ChooseSide(questions.Buy) {
		t.Errorf("left gave %v, %v", choice, done)
	}
	if _, _, done := c.Update(key('1')); done {
		t.Error("digits do not answer binary questions")
	}
}

func TestRenderChart(t *testing.T) {
	if RenderChart(nil) != "" {
		t.Error("no visual renders nothing")
	}
	out := RenderChart(&questions.Visual{Chart: "line", Pattern: "Double Bottom"})
	if !strings.Contains(out, "Double Bottom") || !strings.ContainsRune(out, '▁') {
		t.Errorf("chart = %q", out)
	}
	if RenderChart(&questions.Visual{Chart: "line", Pattern: "Unheard Of"}) == "" {
		t.Error("unknown patterns still render")
	}
}

func TestProgressBar(t *testing.T) {
	bar := NewProgressBar("Q", 0.5, true, 30).View()
	if !strings.Contains(bar, "50%") {
		t.Errorf("bar = %q", bar)
	}
}

func TestCountdownBarColour(t *testing.T) {
	if NewCountdownBar("", 0.9, 20).Fill == NewCountdownBar("", 0.1, 20).Fill {
		t.Error("a nearly expired clock should change colour")
	}
}

func TestMenu_SkipsDisabledAndWraps(t *testing.T) {
	fired := ""
	action := func(label string) func() tea.Cmd {
		return func() tea.Cmd { fired = label; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: action("B")},
		{Label: "C", Disabled: true},
		{Label: "D", Action: action("D")},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down: Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 1 {
		t.Errorf("down from last: Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key('1'))
	if fired != "" || m.Selected != 1 {
		t.Errorf("disabled hotkey fired %q", fired)
	}
	m, _ = m.Update(key('4'))
	if fired != "D" || m.Selected != 3 {
		t.Errorf("hotkey 4: fired %q, Selected %d", fired, m.Selected)
	}

	if !strings.Contains(m.View(40, true), "▸ D") {
		t.Error("compact view should mark the selection")
	}
}

func TestProfit(t *testing.T) {
	if got := Profit(1500); !strings.Contains(got, "+$1,500") {
		t.Errorf("Profit(1500) = %q", got)
	}
	if got := Profit(-250); !strings.Contains(got, "-$250") || strings.Contains(got, "+") {
		t.Errorf("Profit(-250) = %q", got)
	}
}
