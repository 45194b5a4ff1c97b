package questions

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `version: v1.2.0
deck: charts
questions:
  - id: c1
    prompt: "Hammer at support"
    answer: {side: BUY}
    explanation: "Buyers stepped in"
    category: "Candlestick Patterns"
    difficulty: beginner
    visual: {chart: candlestick, pattern: "Hammer"}
  - id: c2
    prompt: "RSI at 80?"
    answer: {options: ["Oversold", "Overbought", "Neutral"], correct: 1}
    category: "RSI"
    difficulty: intermediate
`

func TestParse_YAML(t *testing.T) {
	df, err := Parse([]byte(sampleYAML), "charts.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if df.Deck != DeckCharts {
		t.Errorf("deck = %q, want charts", df.Deck)
	}
	if len(df.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(df.Questions))
	}

	q := df.Questions[0]
	bc, ok := q.Answer.(BinaryChoice)
	if !ok || bc.Correct != Buy {
		t.Errorf("c1 answer = %#v, want BinaryChoice{BUY}", q.Answer)
	}
	if q.Visual == nil || q.Visual.Pattern != "Hammer" {
		t.Errorf("c1 visual = %#v", q.Visual)
	}

	mc, ok := df.Questions[1].Answer.(MultipleChoice)
	if !ok || mc.Correct != 1 || len(mc.Options) != 3 {
		t.Errorf("c2 answer = %#v", df.Questions[1].Answer)
	}
}

const lessonYAML = `version: v1.1.0
deck: lessons
phases:
  - {id: 0, name: "Foundations", tagline: "Start Here", first_day: 1, last_day: 2, badge: "Beginner"}
questions:
  - id: day-1
    prompt: "What is a share?"
    answer: {options: ["A loan", "Part ownership"], correct: 1}
    category: "Foundations"
    difficulty: beginner
    lesson:
      day: 1
      phase: 0
      title: "Shares"
      trade: {stock: "TCS", buy_price: 3500, sell_price: 3550, profit: 50}
      theory:
        title: "Owning a company"
        points: ["A share is a slice of a company", "Shareholders own the business"]
        key_term: "Share"
        key_term_def: "A unit of ownership"
      challenge:
        title: "Pick the owner"
        scenario: "You bought TCS shares:"
        price_data:
          - {label: "Buy", price: 3500}
          - {label: "Loss", price: -20, note: "Stopped out"}
        prompt: "What do you own?"
        options: ["TCS office", "Part of TCS"]
        correct: 1
        explanation: "Shares are ownership."
`

func TestParse_Lesson(t *testing.T) {
	df, err := Parse([]byte(lessonYAML), "lessons.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(df.Phases) != 1 || df.Phases[0].Badge != "Beginner" || df.Phases[0].LastDay != 2 {
		t.Errorf("phases = %+v", df.Phases)
	}

	l := df.Questions[0].Lesson
	if l == nil {
		t.Fatal("lesson not parsed")
	}
	if len(l.Theory.Points) != 2 || l.Theory.KeyTerm != "Share" {
		t.Errorf("theory = %+v", l.Theory)
	}
	c := l.Challenge
	if c == nil {
		t.Fatal("challenge not parsed")
	}
	if !c.IsCorrect(1) || c.IsCorrect(0) {
		t.Errorf("challenge correct = %d, want 1", c.Correct)
	}
	want := PricePoint{Label: "Loss", Price: -20, Note: "Stopped out"}
	if len(c.PriceData) != 2 || c.PriceData[1] != want {
		t.Errorf("price data = %+v", c.PriceData)
	}
}

func TestParse_LessonRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"challenge index", strings.Replace(lessonYAML, "        correct: 1", "        correct: 4", 1), ErrInvalidQuestion},
		{"phase range", strings.Replace(lessonYAML, "first_day: 1, last_day: 2", "first_day: 3, last_day: 2", 1), ErrInvalidPhase},
		{"phases outside lessons", strings.Replace(lessonYAML, "deck: lessons", "deck: swipe", 1), ErrInvalidPhase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc), "lessons.yaml"); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := Parse([]byte(strings.Replace(lessonYAML, "key_term:", "keyword:", 1)), "lessons.yaml"); err == nil {
		t.Error("unknown theory field should be rejected")
	}
}

func TestParse_JSON(t *testing.T) {
	doc := `{"version":"1.0.0","deck":"swipe","questions":[
		{"id":"s1","prompt":"Golden cross","answer":{"side":"BUY"},"category":"General","difficulty":"beginner"}]}`
	df, err := Parse([]byte(doc), "extra.JSON")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if df.Deck != DeckSwipe || len(df.Questions) != 1 {
		t.Errorf("got deck %q with %d questions", df.Deck, len(df.Questions))
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", strings.Replace(sampleYAML, "deck: charts", "deck: charts\nauthor: me", 1)},
		{"bad difficulty", strings.Replace(sampleYAML, "difficulty: beginner", "difficulty: expert", 1)},
		{"bad side", strings.Replace(sampleYAML, "side: BUY", "side: HOLD", 1)},
		{"missing prompt", strings.Replace(sampleYAML, `prompt: "Hammer at support"`, "", 1)},
		{"unknown deck", strings.Replace(sampleYAML, "deck: charts", "deck: crypto", 1)},
		{"two documents", sampleYAML + "---\n" + sampleYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc), "bank.yaml"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParse_IndexOutOfRange(t *testing.T) {
	doc := strings.Replace(sampleYAML, "correct: 1", "correct: 7", 1)
	_, err := Parse([]byte(doc), "bank.yaml")
	if !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("got %v, want ErrInvalidQuestion", err)
	}
}

func TestParse_Version(t *testing.T) {
	tests := []struct {
		version string
		ok      bool
	}{
		{"v1.0.0", true},
		{"1.4.2", true},
		{"v2.0.0", false},
		{"latest", false},
	}
	for _, tt := range tests {
		doc := strings.Replace(sampleYAML, "version: v1.2.0", "version: "+tt.version, 1)
		_, err := Parse([]byte(doc), "bank.yaml")
		if tt.ok && err != nil {
			t.Errorf("version %q: unexpected error %v", tt.version, err)
		}
		if !tt.ok && !errors.Is(err, ErrUnsupportedBankVersion) {
			t.Errorf("version %q: got %v, want ErrUnsupportedBankVersion", tt.version, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	df, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(df.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(df.Questions))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
