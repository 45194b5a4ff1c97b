package questions

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefault(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	tests := []struct {
		deck Deck
		want int
	}{
		{DeckCharts, 200},
		{DeckIndicators, 200},
		{DeckSwipe, 30},
		{DeckLessons, 80},
	}
	for _, tt := range tests {
		if got := b.Deck(tt.deck).Len(); got != tt.want {
			t.Errorf("deck %s: got %d questions, want %d", tt.deck, got, tt.want)
		}
	}
	if len(b.Decks()) != 4 {
		t.Errorf("Decks() = %v, want all four", b.Decks())
	}
}

func TestLoadDefault_ChartCategories(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	charts := b.Deck(DeckCharts)
	tests := []struct {
		category Category
		want     int
	}{
		{CandlestickPatterns, 92},
		{ChartPatterns, 81},
		{SupportResistance, 18},
		{TrendAnalysis, 9},
	}
	for _, tt := range tests {
		if got := len(charts.ByCategory(tt.category)); got != tt.want {
			t.Errorf("charts %q: got %d, want %d", tt.category, got, tt.want)
		}
	}
	for _, q := range charts.All() {
		if q.Answer.Kind() != KindBinary {
			t.Fatalf("chart question %s is not BUY/SELL", q.ID)
		}
	}
}

func TestLoadDefault_Lessons(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	lessons := b.Deck(DeckLessons)
	for day := 1; day <= 80; day++ {
		q, ok := lessons.ByDay(day)
		if !ok {
			t.Errorf("missing lesson for day %d", day)
			continue
		}
		l := q.Lesson
		if l.Title == "" || len(l.Theory.Points) == 0 {
			t.Errorf("day %d has no title or theory", day)
		}
		if l.Challenge == nil {
			t.Errorf("day %d has no challenge", day)
		}
		p, ok := b.Phase(l.Phase)
		if !ok || !p.Contains(day) {
			t.Errorf("day %d is outside its phase %d", day, l.Phase)
		}
	}
}

func TestLoadDefault_Phases(t *testing.T) {
	b, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	phases := b.Phases()
	if len(phases) != 9 {
		t.Fatalf("got %d phases, want 9", len(phases))
	}

	tests := []struct {
		day   int
		badge string
	}{
		{10, "Beginner"},
		{16, "Survivor"},
		{24, "Chart Reader"},
		{36, "Pattern Spotter"},
		{46, "Indicator Pro"},
		{58, "Pattern Master"},
		{66, "Swing Trader"},
		{74, "Options Learner"},
		{80, "Trading Master"},
	}
	lessons := b.Deck(DeckLessons)
	for i, tt := range tests {
		q, _ := lessons.ByDay(tt.day)
		if q.Lesson == nil || q.Lesson.Badge != tt.badge {
			t.Errorf("day %d badge = %+v, want %q", tt.day, q.Lesson, tt.badge)
		}
		if phases[i].LastDay != tt.day || phases[i].Badge != tt.badge {
			t.Errorf("phase %d = %+v, want last day %d with %q", i, phases[i], tt.day, tt.badge)
		}
	}
	if q, _ := lessons.ByDay(23); q.Lesson.Badge != "" {
		t.Errorf("day 23 badge = %q, want none", q.Lesson.Badge)
	}
}

func TestLoadBank_ExternalLessonsReplacePhases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.yaml")
	if err := os.WriteFile(path, []byte(lessonYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadBank([]string{path})
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if got := b.Deck(DeckLessons).Len(); got != 1 {
		t.Errorf("lessons deck has %d questions, want 1", got)
	}
	if got := b.Phases(); len(got) != 1 || got[0].Name != "Foundations" {
		t.Errorf("phases = %+v, want the external one", got)
	}
	if _, ok := b.Phase(8); ok {
		t.Error("embedded phase 8 should be gone")
	}
}

func TestBank_MissingDeckIsEmpty(t *testing.T) {
	b, err := NewBank(map[Deck][]Question{DeckCharts: fixture()})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	r := b.Deck(DeckSwipe)
	if r == nil || r.Len() != 0 || len(r.All()) != 0 {
		t.Error("missing deck should be an empty repository")
	}
	if len(r.ByCategory(General)) != 0 {
		t.Error("empty repository should return no questions")
	}
}

func TestLoadBank_ExternalReplacesDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := LoadBank([]string{path})
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if got := b.Deck(DeckCharts).Len(); got != 2 {
		t.Errorf("charts deck has %d questions, want 2", got)
	}
	if got := b.Deck(DeckIndicators).Len(); got != 200 {
		t.Errorf("indicators deck has %d questions, want the embedded 200", got)
	}
}
