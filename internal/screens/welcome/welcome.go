package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond

	// MaxNameLength caps the trader name.
	MaxNameLength = 20
)

// candleArt is drawn one column per phase so the chart "rises".
var candleArt = []string{
	"                 ┃ ",
	"            ┃   ███",
	"       ┃   ███  ███",
	"  ┃   ███  ███   ┃ ",
	" ███  ███   ┃      ",
	" ███   ┃           ",
	"  ┃                ",
}

var tickerFrames = []string{"▲", "△"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation and, on first run, asks for the
// trader's name before moving on to the home screen.
type WelcomeScreen struct {
	env          *screens.Env
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	naming       bool
	input        components.TextInput
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(env *screens.Env, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		env:         env,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Your trader name", MaxNameLength),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.tick()
}

func (w *WelcomeScreen) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// needsName reports whether there is no save slot yet.
func (w *WelcomeScreen) needsName() bool {
	return w.env != nil && w.env.Tracker != nil && w.env.Progress() == nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.transitioned {
			return w, nil
		}
		return w, w.tick()

	case tea.KeyPressMsg:
		if w.naming {
			return w.updateName(msg)
		}
		// The first key skips the animation.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		if w.needsName() {
			w.naming = true
			return w, w.input.Init()
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) updateName(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	name := w.input.Value()
	if name == "" {
		w.input.SetError("Please enter a name.")
		return w, nil
	}
	if err := w.env.Tracker.Create(context.Background(), name); err != nil {
		w.env.Log().Error("create progress", "error", err)
		w.input.SetError("Could not save: " + err.Error())
		return w, nil
	}
	w.env.Log().Info("new trader", "name", name)
	return w, w.transition()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) chart() string {
	// Reveal the candles left to right over the first phase.
	cols := len([]rune(candleArt[0]))
	shown := cols
	if w.elapsed < phase1End {
		shown = int(float64(cols) * float64(w.elapsed) / float64(phase1End))
	}

	lines := make([]string, len(candleArt))
	for i, l := range candleArt {
		r := []rune(l)
		lines[i] = string(r[:shown]) + strings.Repeat(" ", cols-shown)
	}
	rendered := lipgloss.NewStyle().Foreground(theme.Bull).Render(strings.Join(lines, "\n"))

	if w.elapsed >= phase1End {
		frame := tickerFrames[w.tickCount%len(tickerFrames)]
		arrow := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(frame)
		rendered = lipgloss.JoinHorizontal(lipgloss.Top, rendered, "  ", arrow)
	}
	return rendered
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.chart()}

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn to read the market, one candle at a time.")
		sections = append(sections, tagline)
	}

	switch {
	case w.naming:
		prompt := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).
			Render("What should we call you, trader?")
		sections = append(sections, "", prompt, w.input.View())
	case w.elapsed >= totalDur:
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
