package questions

import (
	"fmt"
	"slices"
)

// Repository is an immutable, ordered collection of questions with
// precomputed category and difficulty indices. All accessors return
// fresh slices in insertion order, holding deep copies of the stored
// questions.
type Repository struct {
	questions    []Question
	byID         map[string]int
	byCategory   map[Category][]Question
	byDifficulty map[Difficulty][]Question
	byDay        map[int]int
	categories   []Category
}

// NewRepository validates the questions and builds a repository over
// deep copies of them. Later changes to qs are not seen by the repository.
func NewRepository(qs []Question) (*Repository, error) {
	if err := validateQuestions(qs); err != nil {
		return nil, err
	}

	r := &Repository{
		questions:    cloneAll(qs),
		byID:         make(map[string]int, len(qs)),
		byCategory:   make(map[Category][]Question),
		byDifficulty: make(map[Difficulty][]Question),
		byDay:        make(map[int]int),
	}
	for i, q := range r.questions {
		r.byID[q.ID] = i
		if _, seen := r.byCategory[q.Category]; !seen {
			r.categories = append(r.categories, q.Category)
		}
		r.byCategory[q.Category] = append(r.byCategory[q.Category], q)
		r.byDifficulty[q.Difficulty] = append(r.byDifficulty[q.Difficulty], q)
		if q.Lesson != nil {
			r.byDay[q.Lesson.Day] = i
		}
	}
	return r, nil
}

// MustRepository is like NewRepository but panics on invalid input.
// Intended for fixtures.
func MustRepository(qs []Question) *Repository {
	r, err := NewRepository(qs)
	if err != nil {
		panic(fmt.Sprintf("questions: %v", err))
	}
	return r
}

// All returns every question in insertion order.
func (r *Repository) All() []Question {
	return cloneAll(r.questions)
}

// ByCategory returns the questions in category c. An unknown category
// yields an empty slice.
func (r *Repository) ByCategory(c Category) []Question {
	return cloneAll(r.byCategory[c])
}

// ByDifficulty returns the questions with difficulty d.
func (r *Repository) ByDifficulty(d Difficulty) []Question {
	return cloneAll(r.byDifficulty[d])
}

// ByGroup returns the questions whose category belongs to pattern group g.
func (r *Repository) ByGroup(g Category) []Question {
	var out []Question
	for _, q := range r.questions {
		if GroupOf(q.Category) == g {
			out = append(out, q.Clone())
		}
	}
	return out
}

// ByDay returns the curriculum question for a lesson day.
func (r *Repository) ByDay(day int) (Question, bool) {
	i, ok := r.byDay[day]
	if !ok {
		return Question{}, false
	}
	return r.questions[i].Clone(), true
}

// Before returns curriculum questions for days strictly before day.
func (r *Repository) Before(day int) []Question {
	var out []Question
	for _, q := range r.questions {
		if q.Lesson != nil && q.Lesson.Day < day {
			out = append(out, q.Clone())
		}
	}
	return out
}

// Lookup returns a question by ID.
func (r *Repository) Lookup(id string) (Question, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Question{}, false
	}
	return r.questions[i].Clone(), true
}

// Categories lists distinct categories in first-seen order.
func (r *Repository) Categories() []Category {
	return slices.Clone(r.categories)
}

// Counts returns the number of questions per category.
func (r *Repository) Counts() map[Category]int {
	counts := make(map[Category]int, len(r.byCategory))
	for c, qs := range r.byCategory {
		counts[c] = len(qs)
	}
	return counts
}

// Len returns the number of questions.
func (r *Repository) Len() int {
	return len(r.questions)
}

func cloneAll(qs []Question) []Question {
	if len(qs) == 0 {
		return nil
	}
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
