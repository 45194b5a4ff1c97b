package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/stockmaster/internal/questions"
)

var (
	// ErrInvalidTransition is returned when a transition is attempted from
	// a phase that does not allow it. The session is left unchanged.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrOutOfRangeChoice is returned when a choice does not fit the
	// current question's answer shape or option bounds.
	ErrOutOfRangeChoice = fmt.Errorf("%w: choice out of range", ErrInvalidTransition)

	// ErrEmptyPool is returned when a filter selects no questions.
	ErrEmptyPool = errors.New("no questions available")
)

// StreakStep is the spacing of celebrated streak lengths: 5, 10, 15...
const StreakStep = 5

// IsStreakMilestone reports whether a streak of n is celebrated.
func IsStreakMilestone(n int) bool { return n > 0 && n%StreakStep == 0 }

// Phase is the state of the current question within a session.
type Phase int

const (
	PhaseUnanswered Phase = iota // Waiting for an answer
	PhaseRevealed                // Answer judged, feedback visible
	PhaseComplete                // Past the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseUnanswered:
		return "unanswered"
	case PhaseRevealed:
		return "revealed"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Mode selects what happens after a wrong answer.
type Mode int

const (
	// ModeScoreAndProceed reveals the correct answer and always lets the
	// learner move on. Correctness only affects the tally.
	ModeScoreAndProceed Mode = iota

	// ModeRetryUntilCorrect keeps the learner on a question until it is
	// answered correctly.
	ModeRetryUntilCorrect
)

func (m Mode) String() string {
	switch m {
	case ModeScoreAndProceed:
		return "score-and-proceed"
	case ModeRetryUntilCorrect:
		return "retry-until-correct"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Session is one run through a fixed, ordered list of questions. Its
// transitions (Answer, Advance, Restart) are the only mutators, and each
// either applies fully or returns an error without changing anything.
//
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	questions []questions.Question
	mode      Mode

	// index is the current question; len(questions) once complete.
	index int
	phase Phase

	// selected is the choice made on the current question, zero when unanswered.
	selected    questions.Choice
	lastCorrect bool

	// correct counts questions answered correctly, at most once each.
	correct int
	solved  []bool
	missed  []bool

	attempts   int
	streak     int
	bestStreak int
}

// New starts a session over qs. An empty list is rejected with
// ErrEmptyPool; no zero-length session is ever constructed.
func New(qs []questions.Question, mode Mode) (*Session, error) {
	s := &Session{mode: mode}
	if err := s.reset(qs); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) reset(qs []questions.Question) error {
	if len(qs) == 0 {
		return ErrEmptyPool
	}
	s.questions = append([]questions.Question(nil), qs...)
	s.index = 0
	s.phase = PhaseUnanswered
	s.selected = questions.Choice{}
	s.lastCorrect = false
	s.correct = 0
	s.solved = make([]bool, len(qs))
	s.missed = make([]bool, len(qs))
	s.attempts = 0
	s.streak = 0
	s.bestStreak = 0
	return nil
}

// Current returns the question being asked. ok is false once complete.
func (s *Session) Current() (q questions.Question, ok bool) {
	if s.phase == PhaseComplete {
		return questions.Question{}, false
	}
	return s.questions[s.index], true
}

// Questions returns the session's questions in order.
func (s *Session) Questions() []questions.Question {
	return append([]questions.Question(nil), s.questions...)
}

func (s *Session) Index() int   { return s.index }
func (s *Session) Len() int     { return len(s.questions) }
func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Mode() Mode   { return s.mode }

// Selected is the choice made on the current question.
func (s *Session) Selected() questions.Choice { return s.selected }

// LastCorrect reports whether the most recent answer was correct.
func (s *Session) LastCorrect() bool { return s.lastCorrect }

// Correct is the running count of questions answered correctly.
func (s *Session) Correct() int { return s.correct }

// Attempts counts every judged answer, including retries.
func (s *Session) Attempts() int { return s.attempts }

// Streak is the current run of consecutive correct answers.
func (s *Session) Streak() int { return s.streak }

// BestStreak is the longest streak reached in this session.
func (s *Session) BestStreak() int { return s.bestStreak }

// FirstTryCorrect counts questions solved without a wrong answer.
func (s *Session) FirstTryCorrect() int {
	n := 0
	for i := range s.solved {
		if s.solved[i] && !s.missed[i] {
			n++
		}
	}
	return n
}

// Answered counts questions that have been judged at least once.
func (s *Session) Answered() int {
	if s.phase == PhaseComplete {
		return len(s.questions)
	}
	n := s.index
	if s.phase == PhaseRevealed || s.missed[s.index] {
		n++
	}
	return n
}

// Progress is currentIndex/total, reaching 1 once complete.
func (s *Session) Progress() float64 {
	return float64(s.index) / float64(len(s.questions))
}

// Complete reports whether the session has passed its last question.
func (s *Session) Complete() bool { return s.phase == PhaseComplete }
