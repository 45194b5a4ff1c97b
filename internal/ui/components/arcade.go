package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/ui/layout"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// ContentWidth is the inner width shared by every card on a screen,
// between 20 and 60 columns.
func ContentWidth(frameWidth int) int {
	// cabinet border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame centres content in a double-border frame filling width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeCard wraps content in a rounded-border card at the given content width.
func ArcadeCard(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// TitledCard is an ArcadeCard with a yellow heading above it.
func TitledCard(title, content string, cw int) string {
	heading := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(title)
	return heading + "\n" + ArcadeCard(content, cw)
}

// Profit renders a signed dollar amount in bull green or bear red.
func Profit(v int) string {
	c, sign := theme.Bull, "+"
	if v < 0 {
		c, sign = theme.Bear, ""
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(sign + layout.FormatMoney(v))
}

// ArcadeButton renders a styled button matching the home menu style.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}
