package session

import (
	"fmt"

	"github.com/abhisek/stockmaster/internal/questions"
)

// Outcome describes one judged answer.
type Outcome struct {
	Question questions.Question
	Choice   questions.Choice
	Correct  bool

	// FirstTry is true when this answer solved the question without a
	// previous miss.
	FirstTry bool

	// Streak is the streak after this answer.
	Streak int

	// Milestone is the streak milestone just reached, or 0.
	Milestone int
}

// Answer judges c against the current question and reveals the result.
// It is only valid while the current question is unanswered; calling it
// again before Advance returns ErrInvalidTransition and changes nothing,
// so a question's correctness is never counted twice.
func (s *Session) Answer(c questions.Choice) (Outcome, error) {
	if s.phase != PhaseUnanswered {
		return Outcome{}, fmt.Errorf("%w: answer while %s", ErrInvalidTransition, s.phase)
	}
	q := s.questions[s.index]
	if err := checkChoice(q, c); err != nil {
		return Outcome{}, err
	}

	correct := IsCorrect(q, c)
	out := Outcome{Question: q, Choice: c, Correct: correct}

	s.selected = c
	s.lastCorrect = correct
	s.phase = PhaseRevealed
	s.attempts++

	if correct {
		if !s.solved[s.index] {
			s.solved[s.index] = true
			s.correct++
			out.FirstTry = !s.missed[s.index]
		}
		s.streak++
		s.bestStreak = max(s.bestStreak, s.streak)
		if IsStreakMilestone(s.streak) {
			out.Milestone = s.streak
		}
	} else {
		s.missed[s.index] = true
		s.streak = 0
	}
	out.Streak = s.streak
	return out, nil
}

// Advance leaves the revealed state. In ModeRetryUntilCorrect a wrong
// answer returns to the same question; otherwise the session moves to the
// next question, or to PhaseComplete after the last one.
func (s *Session) Advance() error {
	if s.phase != PhaseRevealed {
		return fmt.Errorf("%w: advance while %s", ErrInvalidTransition, s.phase)
	}

	s.selected = questions.Choice{}
	if s.mode == ModeRetryUntilCorrect && !s.lastCorrect {
		s.phase = PhaseUnanswered
		return nil
	}

	if s.index+1 < len(s.questions) {
		s.index++
		s.phase = PhaseUnanswered
		return nil
	}
	s.index = len(s.questions)
	s.phase = PhaseComplete
	return nil
}

// Restart begins again with a freshly sampled list. It is allowed from any
// phase; an empty list returns ErrEmptyPool and leaves the session as it was.
func (s *Session) Restart(qs []questions.Question) error {
	if len(qs) == 0 {
		return ErrEmptyPool
	}
	return s.reset(qs)
}
