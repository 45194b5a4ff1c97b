package questions

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Deck names an independent question set. Each deck is served by its
// own Repository.
type Deck string

const (
	DeckCharts     Deck = "charts"
	DeckIndicators Deck = "indicators"
	DeckSwipe      Deck = "swipe"
	DeckLessons    Deck = "lessons"
)

// AllDecks returns all decks in display order.
func AllDecks() []Deck {
	return []Deck{DeckCharts, DeckIndicators, DeckSwipe, DeckLessons}
}

// ParseDeck converts a string to a Deck.
func ParseDeck(s string) (Deck, error) {
	d := Deck(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(AllDecks(), d) {
		return "", fmt.Errorf("unknown deck: %q", s)
	}
	return d, nil
}

// DisplayName returns a human-readable name for a deck.
func (d Deck) DisplayName() string {
	switch d {
	case DeckCharts:
		return "Chart Reading"
	case DeckIndicators:
		return "Indicators & Concepts"
	case DeckSwipe:
		return "Buy or Sell Scenarios"
	case DeckLessons:
		return "Daily Lessons"
	default:
		return string(d)
	}
}

//go:embed data/*.yaml
var embedded embed.FS

// Bank holds one Repository per deck. It is built once at startup and
// shared read-only.
type Bank struct {
	decks  map[Deck]*Repository
	phases []Phase
}

// NewBank builds a bank from per-deck question lists and the curriculum
// phases, if any.
func NewBank(decks map[Deck][]Question, phases ...Phase) (*Bank, error) {
	if err := validatePhases(phases); err != nil {
		return nil, err
	}
	b := &Bank{
		decks:  make(map[Deck]*Repository, len(decks)),
		phases: slices.Clone(phases),
	}
	for d, qs := range decks {
		r, err := NewRepository(qs)
		if err != nil {
			return nil, fmt.Errorf("deck %s: %w", d, err)
		}
		b.decks[d] = r
	}
	return b, nil
}

// Deck returns the repository for d. A deck with no questions yields an
// empty repository, never nil.
func (b *Bank) Deck(d Deck) *Repository {
	if r, ok := b.decks[d]; ok {
		return r
	}
	return &Repository{}
}

// Decks lists the decks that have at least one question.
func (b *Bank) Decks() []Deck {
	var out []Deck
	for _, d := range AllDecks() {
		if r, ok := b.decks[d]; ok && r.Len() > 0 {
			out = append(out, d)
		}
	}
	return out
}

// Phases returns the curriculum phases in file order.
func (b *Bank) Phases() []Phase {
	return slices.Clone(b.phases)
}

// Phase returns the phase with the given ID.
func (b *Bank) Phase(id int) (Phase, bool) {
	for _, p := range b.phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// LoadDefault loads the bank compiled into the binary.
func LoadDefault() (*Bank, error) {
	return LoadBank(nil)
}

// LoadBank loads the embedded bank and then the files at paths. A deck
// named by any external file is replaced as a whole; several external
// files naming the same deck are concatenated in order. Replacing the
// lessons deck also replaces the phases.
func LoadBank(paths []string) (*Bank, error) {
	decks, phases, err := loadEmbedded()
	if err != nil {
		return nil, err
	}

	external := make(map[Deck][]Question)
	var externalPhases []Phase
	for _, p := range paths {
		df, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		external[df.Deck] = append(external[df.Deck], df.Questions...)
		externalPhases = append(externalPhases, df.Phases...)
	}
	for d, qs := range external {
		decks[d] = qs
	}
	if _, ok := external[DeckLessons]; ok {
		phases = externalPhases
	}

	return NewBank(decks, phases...)
}

func loadEmbedded() (map[Deck][]Question, []Phase, error) {
	entries, err := fs.ReadDir(embedded, "data")
	if err != nil {
		return nil, nil, fmt.Errorf("read embedded bank: %w", err)
	}

	decks := make(map[Deck][]Question)
	var phases []Phase
	for _, e := range entries {
		name := path.Join("data", e.Name())
		data, err := embedded.ReadFile(name)
		if err != nil {
			return nil, nil, fmt.Errorf("read embedded bank: %w", err)
		}
		df, err := Parse(data, name)
		if err != nil {
			return nil, nil, fmt.Errorf("embedded %s: %w", name, err)
		}
		decks[df.Deck] = append(decks[df.Deck], df.Questions...)
		phases = append(phases, df.Phases...)
	}
	return decks, phases, nil
}
