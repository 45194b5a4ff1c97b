package questions

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQuestion is returned when a question breaks a structural rule.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrInvalidPhase is returned for malformed curriculum phases.
	ErrInvalidPhase = errors.New("invalid phase")
)

// validateQuestions checks every question and returns one error listing
// all problems, or nil.
func validateQuestions(qs []Question) error {
	var errs []string

	seen := make(map[string]bool, len(qs))
	days := make(map[int]string)
	for _, q := range qs {
		if q.ID == "" {
			errs = append(errs, "question with empty ID")
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true

		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %q has an empty prompt", q.ID))
		}
		if q.Category == "" {
			errs = append(errs, fmt.Sprintf("question %q has no category", q.ID))
		}
		if !q.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("question %q has unknown difficulty %q", q.ID, q.Difficulty))
		}
		if msg := checkAnswer(q.Answer); msg != "" {
			errs = append(errs, fmt.Sprintf("question %q: %s", q.ID, msg))
		}
		if q.Lesson != nil {
			if q.Lesson.Day < 1 {
				errs = append(errs, fmt.Sprintf("question %q has lesson day %d", q.ID, q.Lesson.Day))
			} else if other, dup := days[q.Lesson.Day]; dup {
				errs = append(errs, fmt.Sprintf("questions %q and %q share lesson day %d", other, q.ID, q.Lesson.Day))
			}
			days[q.Lesson.Day] = q.ID
			if c := q.Lesson.Challenge; c != nil {
				msg := checkAnswer(MultipleChoice{Options: c.Options, Correct: c.Correct})
				if msg != "" {
					errs = append(errs, fmt.Sprintf("question %q challenge: %s", q.ID, msg))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidQuestion, strings.Join(errs, "; "))
	}
	return nil
}

func checkAnswer(a AnswerSpec) string {
	switch a := a.(type) {
	case MultipleChoice:
		if len(a.Options) < 2 {
			return fmt.Sprintf("needs at least 2 options, has %d", len(a.Options))
		}
		if a.Correct < 0 || a.Correct >= len(a.Options) {
			return fmt.Sprintf("correct index %d out of range [0,%d)", a.Correct, len(a.Options))
		}
	case BinaryChoice:
		if !a.Correct.Valid() {
			return fmt.Sprintf("binary answer %q is not BUY or SELL", a.Correct)
		}
	case nil:
		return "missing answer"
	default:
		return fmt.Sprintf("unsupported answer type %T", a)
	}
	return ""
}

// validatePhases checks that phases have unique IDs and disjoint,
// well-formed day ranges.
func validatePhases(phases []Phase) error {
	var errs []string
	ids := make(map[int]bool, len(phases))
	for i, p := range phases {
		if ids[p.ID] {
			errs = append(errs, fmt.Sprintf("duplicate phase %d", p.ID))
		}
		ids[p.ID] = true
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("phase %d has no name", p.ID))
		}
		if p.FirstDay < 1 || p.LastDay < p.FirstDay {
			errs = append(errs, fmt.Sprintf("phase %d has days %d-%d", p.ID, p.FirstDay, p.LastDay))
		}
		for _, other := range phases[:i] {
			if p.FirstDay <= other.LastDay && other.FirstDay <= p.LastDay {
				errs = append(errs, fmt.Sprintf("phases %d and %d overlap", other.ID, p.ID))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPhase, strings.Join(errs, "; "))
	}
	return nil
}
