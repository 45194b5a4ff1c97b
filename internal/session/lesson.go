package session

import (
	"fmt"

	"github.com/abhisek/stockmaster/internal/questions"
)

// DefaultReviews is how many earlier lessons are mixed into a lesson quiz.
const DefaultReviews = 2

// BuildLessonQuiz returns the question for day plus up to reviews questions
// from earlier days, shuffled.
func BuildLessonQuiz(lessons *questions.Repository, day, reviews int, src Source) ([]questions.Question, error) {
	q, ok := lessons.ByDay(day)
	if !ok {
		return nil, fmt.Errorf("lesson day %d: %w", day, ErrEmptyPool)
	}
	out := []questions.Question{q}
	out = append(out, Sample(lessons.Before(day), reviews, src)...)
	Shuffle(out, src)
	return out, nil
}
