package home

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/screens/picker"
	"github.com/abhisek/stockmaster/internal/screens/swipe"
)

func testEnv(t *testing.T) *screens.Env {
	t.Helper()
	bank, err := questions.NewBank(map[questions.Deck][]questions.Question{
		questions.DeckCharts: {{
			ID: "c1", Prompt: "Chart?", Category: questions.ChartPatterns, Difficulty: questions.Beginner,
			Answer: questions.BinaryChoice{Correct: questions.Buy},
		}},
		questions.DeckSwipe: {{
			ID: "s1", Prompt: "Swipe?", Category: questions.General, Difficulty: questions.Beginner,
			Answer: questions.BinaryChoice{Correct: questions.Sell},
		}},
	})
	require.NoError(t, err)
	return &screens.Env{Bank: bank}
}

func down(h *HomeScreen) {
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
}

func selectedLabel(h *HomeScreen) string {
	item, _ := h.menu.Current()
	return item.Label
}

func TestHomeScreen_PracticePushesPicker(t *testing.T) {
	h := New(testEnv(t))
	require.Equal(t, LabelPractice, selectedLabel(h))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &picker.PickerScreen{}, push.Screen)
}

func TestHomeScreen_SkipsEmptyDecks(t *testing.T) {
	h := New(testEnv(t))
	assert.True(t, h.menu.Items[1].Disabled, "speed needs the indicator deck")
	assert.True(t, h.menu.Items[3].Disabled, "lessons need the lesson deck")
	assert.True(t, h.menu.Items[5].Disabled, "history needs an event repo")

	down(h)
	assert.Equal(t, LabelSwipe, selectedLabel(h))
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push := cmd().(router.PushScreenMsg)
	assert.IsType(t, &swipe.SwipeScreen{}, push.Screen)

	down(h)
	assert.Equal(t, LabelStats, selectedLabel(h))
	down(h)
	assert.Equal(t, LabelExit, selectedLabel(h))
}

func TestHomeScreen_StatsBarReadsProgress(t *testing.T) {
	env := testEnv(t)
	h := New(env)
	view := h.View(120, 40)
	assert.Contains(t, view, "$10,000")
	assert.Contains(t, view, "NO LESSONS")
	assert.Contains(t, view, "PRACTICE")
}

func TestMascotFor(t *testing.T) {
	now := time.Now()
	assert.Equal(t, MascotBull, MascotFor(nil))

	p := progress.New("a", now)
	assert.Equal(t, MascotBull, MascotFor(p))

	p.Balance = progress.StartingBalance - 1
	assert.Equal(t, MascotBear, MascotFor(p))

	p.Balance = progress.StartingBalance + 100
	p.Streak = 5
	assert.Equal(t, MascotCelebrating, MascotFor(p))
	assert.True(t, strings.Contains(RenderMascot(MascotCelebrating), "^^"))
}

func TestHomeScreen_DigitHotkeys(t *testing.T) {
	h := New(testEnv(t))

	_, cmd := h.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	assert.Nil(t, cmd, "speed is disabled without indicator questions")
	assert.Equal(t, LabelPractice, selectedLabel(h))

	_, cmd = h.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	require.NotNil(t, cmd)
	assert.Equal(t, LabelSwipe, selectedLabel(h))
	assert.IsType(t, &swipe.SwipeScreen{}, cmd().(router.PushScreenMsg).Screen)
}

func TestHomeScreen_NavigationWraps(t *testing.T) {
	h := New(testEnv(t))
	h.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, LabelExit, selectedLabel(h))
	down(h)
	assert.Equal(t, LabelPractice, selectedLabel(h))
}
