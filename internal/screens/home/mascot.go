package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotBull        MascotVariant = iota // portfolio at or above the starting balance
	MascotCelebrating                      // lesson streak milestone
	MascotBear                             // portfolio below the starting balance
)

const mascotBull = `((__))
 (oo)
  \/___
  |    |\
  ||--|| `

const mascotCelebrating = ` \((__))/
   (^^)
    \/___
    |    |\
    ||--|| `

const mascotBear = ` (o)_(o)
 ( •.• )
 (  v  )
  ^^ ^^ `

// streakCelebration is how often a lesson streak earns the party mascot.
const streakCelebration = 5

// MascotFor picks the mascot for p. A nil p gets the bull.
func MascotFor(p *progress.Progress) MascotVariant {
	switch {
	case p == nil:
		return MascotBull
	case p.Balance < progress.StartingBalance:
		return MascotBear
	case p.Streak > 0 && p.Streak%streakCelebration == 0:
		return MascotCelebrating
	default:
		return MascotBull
	}
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	var art string
	fg := theme.Bull

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotBear:
		art = mascotBear
		fg = theme.Bear
	default:
		art = mascotBull
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
