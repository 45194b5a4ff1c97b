package questions

import (
	"fmt"
	"strings"
)

// AnswerKind tags the two answer shapes a question can have.
type AnswerKind int

const (
	KindMultipleChoice AnswerKind = iota + 1
	KindBinary
)

func (k AnswerKind) String() string {
	switch k {
	case KindMultipleChoice:
		return "multiple_choice"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Side is one of the two values of a binary BUY/SELL question.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// ParseSide accepts BUY/SELL in any case, or the single letters b/s.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	}
	return "", fmt.Errorf("unknown side: %q", s)
}

// Valid reports whether s is BUY or SELL.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// AnswerSpec describes the correct answer of a question: either
// MultipleChoice or BinaryChoice.
type AnswerSpec interface {
	Kind() AnswerKind

	// CorrectLabel is the display text of the correct answer.
	CorrectLabel() string

	answerSpec()
}

// MultipleChoice is an indexed list of options with one correct entry.
type MultipleChoice struct {
	Options []string
	Correct int
}

func (MultipleChoice) Kind() AnswerKind { return KindMultipleChoice }
func (MultipleChoice) answerSpec()      {}

func (m MultipleChoice) CorrectLabel() string {
	if m.Correct < 0 || m.Correct >= len(m.Options) {
		return ""
	}
	return m.Options[m.Correct]
}

// BinaryChoice is a two-way BUY/SELL question.
type BinaryChoice struct {
	Correct Side
}

func (BinaryChoice) Kind() AnswerKind { return KindBinary }
func (BinaryChoice) answerSpec()      {}

func (b BinaryChoice) CorrectLabel() string { return string(b.Correct) }

// Choice is a learner's answer: an option index or a side.
// The zero Choice means no answer.
type Choice struct {
	kind  AnswerKind
	index int
	side  Side
}

// ChooseIndex selects the option at index i of a multiple-choice question.
func ChooseIndex(i int) Choice {
	return Choice{kind: KindMultipleChoice, index: i}
}

// ChooseSide selects BUY or SELL on a binary question.
func ChooseSide(s Side) Choice {
	return Choice{kind: KindBinary, side: s}
}

// Kind returns which answer shape the choice targets.
func (c Choice) Kind() AnswerKind { return c.kind }

// Index returns the chosen option index. Only meaningful for multiple choice.
func (c Choice) Index() int { return c.index }

// Side returns the chosen side. Only meaningful for binary choices.
func (c Choice) Side() Side { return c.side }

// IsZero reports whether no answer has been made.
func (c Choice) IsZero() bool { return c.kind == 0 }

func (c Choice) String() string {
	switch c.kind {
	case KindMultipleChoice:
		return fmt.Sprintf("#%d", c.index)
	case KindBinary:
		return string(c.side)
	default:
		return "unanswered"
	}
}
