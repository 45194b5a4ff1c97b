package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/screens/home"
	"github.com/abhisek/stockmaster/internal/screens/welcome"
	"github.com/abhisek/stockmaster/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Env *screens.Env

	// Logger replaces Env.Logger when set.
	Logger *slog.Logger

	// SkipWelcome opens straight on the home screen. It is ignored on
	// first run, when the welcome screen asks for a name.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screens.Env
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	if env == nil {
		env = &screens.Env{}
	}
	if opts.Logger != nil {
		env.Logger = opts.Logger
	}
	homeFactory := func() screen.Screen { return home.New(env) }

	var first screen.Screen
	if opts.SkipWelcome && env.Progress() != nil {
		first = homeFactory()
	} else {
		first = welcome.New(env, homeFactory)
	}
	return AppModel{
		env:    env,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.env.HeaderStats(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	model := newAppModel(opts)
	log := model.env.Log()
	log.Info("tui started", "skip_welcome", opts.SkipWelcome)

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		log.Error("tui failed", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	log.Info("tui exited")
	return nil
}
