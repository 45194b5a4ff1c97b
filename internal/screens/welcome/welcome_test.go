package welcome

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/store"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

func newTestWelcome(env *screens.Env) (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(env, factory), &callCount
}

// newTracker returns a tracker over a fresh database with no save slot.
func newTracker(t *testing.T) *progress.Tracker {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "welcome.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	tr := progress.NewTracker(st.EventRepo(), st.SnapshotRepo(), slog.New(slog.DiscardHandler))
	if _, err := tr.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return tr
}

func sendTicks(w *WelcomeScreen, n int) (screen.Screen, tea.Cmd) {
	var s screen.Screen = w
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		s, cmd = s.Update(tickMsg(time.Now()))
	}
	return s, cmd
}

func typeText(w *WelcomeScreen, s string) {
	for _, r := range s {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome(nil)

	view := w.View(80, 24)
	if containsBanner(view) {
		t.Error("banner should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	if w.elapsed != 1500*time.Millisecond {
		t.Errorf("expected elapsed 1500ms, got %v", w.elapsed)
	}
	view = w.View(80, 24)
	if !containsBanner(view) {
		t.Error("banner should be visible after phase 2")
	}
	if strings.Contains(view, "press any key") {
		t.Error("hint should wait for the animation to finish")
	}
}

func TestKeypressDuringAnimationSkipsAhead(t *testing.T) {
	w, callCount := newTestWelcome(nil)
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Error("first key should only skip the animation")
	}
	if w.elapsed != totalDur {
		t.Errorf("elapsed = %v, want %v", w.elapsed, totalDur)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called yet, got %d", *callCount)
	}
}

func TestKeypressAfterAnimationEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome(nil)
	sendTicks(w, 35)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from keypress after animation")
	}
	replaceMsg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if replaceMsg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome(nil)

	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome(nil)

	sendTicks(w, 45)
	w.Update(tea.KeyPressMsg{Code: 'a'})

	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestFirstRunAsksForName(t *testing.T) {
	tr := newTracker(t)
	w, callCount := newTestWelcome(&screens.Env{Tracker: tr})
	sendTicks(w, 35)

	w.Update(tea.KeyPressMsg{Code: ' '})
	if !w.naming {
		t.Fatal("first run should ask for a name")
	}
	if !strings.Contains(w.View(80, 24), "What should we call you") {
		t.Error("name prompt missing")
	}

	// An empty name is rejected.
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil || !strings.Contains(w.View(80, 24), "Please enter a name") {
		t.Error("empty name should show an error")
	}

	typeText(w, "Asha")
	_, cmd = w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with a name should move on")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory calls = %d", *callCount)
	}
	if p := tr.Progress(); p == nil || p.Name != "Asha" || p.Balance != progress.StartingBalance {
		t.Errorf("progress = %+v", p)
	}
}

func TestReturningTraderSkipsName(t *testing.T) {
	tr := newTracker(t)
	if err := tr.Create(context.Background(), "Ravi"); err != nil {
		t.Fatal(err)
	}
	w, _ := newTestWelcome(&screens.Env{Tracker: tr})
	sendTicks(w, 35)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if w.naming || cmd == nil {
		t.Error("a saved trader should go straight home")
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome(nil)
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestBannerFallback(t *testing.T) {
	if !strings.Contains(RenderBanner(40), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
}

func containsBanner(s string) bool {
	return strings.Contains(s, "one candle at a time")
}
