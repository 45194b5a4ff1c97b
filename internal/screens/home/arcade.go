package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

const arcadeTitleFull = ` ___ _____ ___   ___ _  ____  __   _   ___ _____ ___ ___
/ __|_   _/ _ \ / __| |/ /  \/  | /_\ / __|_   _| __| _ \
\__ \ | || (_) | (__| ' <| |\/| |/ _ \\__ \ | | | _||   /
|___/ |_| \___/ \___|_|\_\_|  |_/_/ \_\___/ |_| |___|_|_\`

const arcadeTitleCompact = "S · T · O · C · K · M · A · S · T · E · R"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// statsLine is what the stats bar shows.
type statsLine struct {
	Day     int
	Total   int
	XP      int
	Balance int
	Profit  int
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st statsLine, cw int, compact bool) string {
	dayStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	xpStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	moneyStyle := lipgloss.NewStyle().Foreground(theme.Bull).Bold(true)
	if st.Profit < 0 {
		moneyStyle = moneyStyle.Foreground(theme.Bear)
	}

	day := fmt.Sprintf("DAY %d/%d", min(st.Day, st.Total), st.Total)
	if st.Total == 0 {
		day = "NO LESSONS"
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			dayStyle.Render(day),
			xpStyle.Render(fmt.Sprintf("★%d", st.XP)),
			moneyStyle.Render(layout.FormatMoney(st.Balance)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			dayStyle.Render("◷ "+day),
			xpStyle.Render(fmt.Sprintf("★ %d XP", st.XP)),
			moneyStyle.Render(layout.FormatMoney(st.Balance)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLessonNote nudges the learner towards today's lesson.
func renderLessonNote(title string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("Today's lesson: " + title)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
