package session

import (
	"fmt"
	"math"

	"github.com/abhisek/stockmaster/internal/questions"
)

// IsCorrect reports whether c answers q correctly. A choice of the wrong
// shape is never correct.
func IsCorrect(q questions.Question, c questions.Choice) bool {
	switch a := q.Answer.(type) {
	case questions.MultipleChoice:
		return c.Kind() == questions.KindMultipleChoice && c.Index() == a.Correct
	case questions.BinaryChoice:
		return c.Kind() == questions.KindBinary && c.Side() == a.Correct
	default:
		return false
	}
}

// checkChoice rejects choices outside the question's answer domain.
func checkChoice(q questions.Question, c questions.Choice) error {
	switch a := q.Answer.(type) {
	case questions.MultipleChoice:
		if c.Kind() != questions.KindMultipleChoice {
			return fmt.Errorf("%w: %s given for a multiple-choice question", ErrOutOfRangeChoice, c)
		}
		if c.Index() < 0 || c.Index() >= len(a.Options) {
			return fmt.Errorf("%w: option %d of %d", ErrOutOfRangeChoice, c.Index(), len(a.Options))
		}
	case questions.BinaryChoice:
		if c.Kind() != questions.KindBinary {
			return fmt.Errorf("%w: %s given for a buy/sell question", ErrOutOfRangeChoice, c)
		}
		if !c.Side().Valid() {
			return fmt.Errorf("%w: side %q", ErrOutOfRangeChoice, c.Side())
		}
	default:
		return fmt.Errorf("%w: question %q has no answer", ErrOutOfRangeChoice, q.ID)
	}
	return nil
}

// Result is the aggregate of a finished session.
type Result struct {
	Correct    int
	Total      int
	Percentage int
}

// Percentage returns round(100*correct/total), or 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// SessionResult scores a complete session over all of its questions.
func SessionResult(s *Session) (Result, error) {
	if !s.Complete() {
		return Result{}, fmt.Errorf("%w: result while %s", ErrInvalidTransition, s.phase)
	}
	return Result{
		Correct:    s.correct,
		Total:      len(s.questions),
		Percentage: Percentage(s.correct, len(s.questions)),
	}, nil
}

// PartialResult scores a session over the questions answered so far. It
// is used when a session is abandoned or its clock runs out.
func PartialResult(s *Session) Result {
	total := s.Answered()
	return Result{
		Correct:    s.correct,
		Total:      total,
		Percentage: Percentage(s.correct, total),
	}
}

// Grade returns the band label for a session percentage.
func Grade(pct int) string {
	switch {
	case pct >= 90:
		return "Expert Trader"
	case pct >= 70:
		return "Great Job"
	case pct >= 50:
		return "Good Effort"
	default:
		return "Keep Practicing"
	}
}
