package questions

import (
	"fmt"
	"slices"
	"strings"
)

// Difficulty represents how hard a question is.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// AllDifficulties returns all difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// ParseDifficulty converts a string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty: %q", s)
	}
	return d, nil
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return slices.Contains(AllDifficulties(), d)
}

// DisplayName returns a human-readable name for a difficulty.
func (d Difficulty) DisplayName() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	default:
		return string(d)
	}
}

// Question is a single immutable quiz item.
type Question struct {
	ID          string
	Prompt      string
	Answer      AnswerSpec
	Explanation string
	Category    Category
	Difficulty  Difficulty

	// Visual is an optional chart payload, only interpreted by renderers.
	Visual *Visual

	// Lesson is set on curriculum quiz questions.
	Lesson *Lesson
}

// Options returns the labels a learner chooses from, in display order.
func (q Question) Options() []string {
	switch a := q.Answer.(type) {
	case MultipleChoice:
		return slices.Clone(a.Options)
	case BinaryChoice:
		return []string{string(Buy), string(Sell)}
	default:
		return nil
	}
}

// Visual describes the chart shown alongside a question.
type Visual struct {
	Chart   string // candlestick or line
	Pattern string
}

// Clone returns a deep copy of q. Questions handed out by a Repository
// are clones, so callers may modify them freely.
func (q Question) Clone() Question {
	if mc, ok := q.Answer.(MultipleChoice); ok {
		q.Answer = MultipleChoice{Options: slices.Clone(mc.Options), Correct: mc.Correct}
	}
	if q.Visual != nil {
		v := *q.Visual
		q.Visual = &v
	}
	if q.Lesson != nil {
		l := q.Lesson.clone()
		q.Lesson = &l
	}
	return q
}

// Lesson places a quiz question in the day-by-day curriculum.
type Lesson struct {
	Day   int
	Phase int
	Title string

	// Badge is awarded when this lesson completes its phase.
	Badge string
	Trade Trade

	// Theory is shown before the quiz. Challenge follows a correct quiz
	// answer; lessons without one go straight to the trade.
	Theory    Theory
	Challenge *Challenge
}

func (l Lesson) clone() Lesson {
	l.Theory.Points = slices.Clone(l.Theory.Points)
	if l.Challenge != nil {
		c := *l.Challenge
		c.PriceData = slices.Clone(c.PriceData)
		c.Options = slices.Clone(c.Options)
		l.Challenge = &c
	}
	return l
}

// Theory is the reading part of a lesson.
type Theory struct {
	Title      string
	Points     []string
	KeyTerm    string
	KeyTermDef string

	// Unlock is the line shown once the lesson is done.
	Unlock string
}

// Challenge is a scenario question asked after the lesson quiz.
type Challenge struct {
	Title       string
	Scenario    string
	PriceData   []PricePoint
	Prompt      string
	Options     []string
	Correct     int
	Explanation string
}

// IsCorrect reports whether option i answers the challenge.
func (c Challenge) IsCorrect(i int) bool { return i == c.Correct }

// PricePoint is one row of a challenge scenario. A zero Price marks a
// row that only carries a note.
type PricePoint struct {
	Label string
	Price int
	Note  string
}

// Trade is the simulated trade credited when a lesson is completed.
type Trade struct {
	Stock     string
	BuyPrice  int
	SellPrice int
	Profit    int
}

// Phase groups consecutive lesson days under a theme. Finishing the last
// day of a phase awards its badge.
type Phase struct {
	ID       int
	Name     string
	Tagline  string
	FirstDay int
	LastDay  int
	Badge    string
}

// Contains reports whether day falls within the phase.
func (p Phase) Contains(day int) bool { return day >= p.FirstDay && day <= p.LastDay }
