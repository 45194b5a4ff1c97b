package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/screens/welcome"
	"github.com/abhisek/stockmaster/internal/ui/layout"
)

type stubScreen struct {
	title    string
	handles  bool
	lastKey  string
	keyHints []layout.KeyHint
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.lastKey = k.String()
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string       { return s.title }
func (s *stubScreen) Title() string              { return s.title }
func (s *stubScreen) HandlesBack() bool          { return s.handles }
func (s *stubScreen) KeyHints() []layout.KeyHint { return s.keyHints }

func modelWith(screens ...screen.Screen) AppModel {
	m := newAppModel(Options{})
	m.router = router.New(screens[0])
	for _, s := range screens[1:] {
		m.router.Push(s)
	}
	return m
}

func TestNewAppModel_StartsOnWelcome(t *testing.T) {
	m := newAppModel(Options{Env: &screens.Env{}, SkipWelcome: true})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("without progress the welcome screen must show, got %T", m.router.Active())
	}
}

func TestEscPopsUnlessHandled(t *testing.T) {
	base := &stubScreen{title: "base"}
	top := &stubScreen{title: "top"}
	m := modelWith(base, top)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	top.handles = true
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("a screen that handles back should get esc itself")
	}
	if top.lastKey != "esc" {
		t.Errorf("lastKey = %q", top.lastKey)
	}
}

func TestEscAtRootIsIgnored(t *testing.T) {
	m := modelWith(&stubScreen{title: "only"})
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}
}

func TestFooterHints(t *testing.T) {
	s := &stubScreen{title: "Stats", keyHints: []layout.KeyHint{{Key: "X", Description: "Explode"}}}
	m := modelWith(s)
	if hints := m.footerHints(s); len(hints) != 1 || hints[0].Description != "Explode" {
		t.Errorf("hints = %+v, want the screen's own", hints)
	}

	s.keyHints = nil
	if hints := m.footerHints(s); len(hints) == 0 || hints[0].Key != "↑↓" {
		t.Errorf("root fallback hints = %+v", hints)
	}
}
