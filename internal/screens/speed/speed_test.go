package speed

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testEnv(t *testing.T, n int, clock time.Duration) *screens.Env {
	t.Helper()
	var qs []questions.Question
	for i := range n {
		qs = append(qs, questions.Question{
			ID:         fmt.Sprintf("ind-%d", i),
			Prompt:     fmt.Sprintf("Indicator %d?", i),
			Answer:     questions.MultipleChoice{Options: []string{"A", "B", "C", "D"}, Correct: i % 4},
			Category:   "RSI",
			Difficulty: questions.Beginner,
		})
	}
	bank, err := questions.NewBank(map[questions.Deck][]questions.Question{questions.DeckIndicators: qs})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	seed := uint64(1)
	return &screens.Env{Bank: bank, SpeedDuration: clock, Seed: &seed}
}

func correctKey(t *testing.T, s *SpeedScreen) tea.KeyPressMsg {
	t.Helper()
	q, ok := s.game.Current()
	if !ok {
		t.Fatal("no current question")
	}
	return keyPress(rune('1' + q.Answer.(questions.MultipleChoice).Correct))
}

func TestSpeedScreen_CorrectAnswerScores(t *testing.T) {
	s := New(testEnv(t, 5, time.Minute))
	if s.errMsg != "" {
		t.Fatalf("errMsg = %q", s.errMsg)
	}

	s.Update(correctKey(t, s))
	if s.last == nil || !s.last.Correct {
		t.Fatalf("last = %+v", s.last)
	}
	if s.game.Score() != 16 {
		t.Errorf("score = %d, want 16", s.game.Score())
	}
	if s.game.Index() != 1 {
		t.Errorf("index = %d, want 1", s.game.Index())
	}
	if !strings.Contains(s.View(100, 30), "+16") {
		t.Error("view should flash the points")
	}
}

func TestSpeedScreen_ClockExpires(t *testing.T) {
	s := New(testEnv(t, 5, 2*time.Second))

	if _, cmd := s.Update(tickMsg{run: s.run}); cmd == nil {
		t.Fatal("first tick should schedule another")
	}
	_, cmd := s.Update(tickMsg{run: s.run})
	if cmd != nil {
		t.Error("expired clock should stop ticking")
	}
	if s.summary == nil || s.summary.Reason != session.EndExpired {
		t.Fatalf("summary = %+v", s.summary)
	}
	if !strings.Contains(s.View(100, 30), "Time's up!") {
		t.Error("expected the time's up view")
	}
}

func TestSpeedScreen_StaleTickIgnored(t *testing.T) {
	s := New(testEnv(t, 5, 2*time.Second))
	stale := s.run

	s.Update(keyPress('q'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.summary == nil {
		t.Fatal("esc should end the run")
	}
	s.Update(keyPress('r'))
	if s.summary != nil || s.run == stale {
		t.Fatal("r should start a new run")
	}

	before := s.remaining
	if _, cmd := s.Update(tickMsg{run: stale}); cmd != nil || s.remaining != before {
		t.Error("a tick from the old run must be ignored")
	}
}

func TestSpeedScreen_FinishAndLeave(t *testing.T) {
	s := New(testEnv(t, 2, time.Minute))
	s.Update(correctKey(t, s))
	s.Update(correctKey(t, s))

	if s.summary == nil || s.summary.Reason != session.EndCompleted {
		t.Fatalf("summary = %+v", s.summary)
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter should return home")
	}
}

func TestSpeedScreen_EmptyDeck(t *testing.T) {
	bank, _ := questions.NewBank(nil)
	s := New(&screens.Env{Bank: bank})
	if s.errMsg == "" {
		t.Fatal("expected an error for an empty deck")
	}
	if s.Init() != nil {
		t.Error("no clock should run without questions")
	}
}
