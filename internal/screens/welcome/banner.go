package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/ui/theme"
)

const bannerArt = `
 ___ _____ ___   ___ _  ____  __   _   ___ _____ ___ ___
/ __|_   _/ _ \ / __| |/ /  \/  | /_\ / __|_   _| __| _ \
\__ \ | || (_) | (__| ' <| |\/| |/ _ \\__ \ | | | _||   /
|___/ |_| \___/ \___|_|\_\_|  |_/_/ \_\___/ |_| |___|_|_\`

const bannerCompact = "S T O C K M A S T E R"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 60

// RenderBanner returns the STOCKMASTER banner in the primary color, or a
// compact one on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
