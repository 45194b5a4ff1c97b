package session

import (
	"slices"
	"time"

	"github.com/abhisek/stockmaster/internal/questions"
)

// EndReason records how a session finished.
type EndReason int

const (
	EndCompleted EndReason = iota
	EndAbandoned
	EndExpired
)

// Action is the value stored in the event log.
func (r EndReason) Action() string {
	switch r {
	case EndAbandoned:
		return "abandon"
	case EndExpired:
		return "timeout"
	default:
		return "end"
	}
}

// CategoryResult is the per-category tally of a session.
type CategoryResult struct {
	Category questions.Category
	Correct  int
	Total    int
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	Result     Result
	Reason     EndReason
	BestStreak int
	Attempts   int
	FirstTry   int
	Points     int
	Categories []CategoryResult
	Elapsed    time.Duration
}

// Summarize builds a Summary from a session. Incomplete sessions are
// scored over the questions answered so far.
func Summarize(s *Session, reason EndReason, elapsed time.Duration) Summary {
	res, err := SessionResult(s)
	if err != nil {
		res = PartialResult(s)
	}

	byCat := map[questions.Category]*CategoryResult{}
	var order []questions.Category
	for i := 0; i < res.Total && i < len(s.questions); i++ {
		c := s.questions[i].Category
		cr, ok := byCat[c]
		if !ok {
			cr = &CategoryResult{Category: c}
			byCat[c] = cr
			order = append(order, c)
		}
		cr.Total++
		if s.solved[i] {
			cr.Correct++
		}
	}
	slices.Sort(order)
	cats := make([]CategoryResult, 0, len(order))
	for _, c := range order {
		cats = append(cats, *byCat[c])
	}

	return Summary{
		Result:     res,
		Reason:     reason,
		BestStreak: s.bestStreak,
		Attempts:   s.attempts,
		FirstTry:   s.FirstTryCorrect(),
		Categories: cats,
		Elapsed:    elapsed,
	}
}
