package session

import (
	"fmt"
	"strings"

	"github.com/abhisek/stockmaster/internal/questions"
)

// FilterKind selects how a Filter narrows the repository.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterCategory
	FilterDifficulty
	FilterGroup
)

// Filter describes which questions a session draws from.
type Filter struct {
	Kind       FilterKind
	Category   questions.Category
	Difficulty questions.Difficulty
}

func AllQuestions() Filter { return Filter{Kind: FilterAll} }

func InCategory(c questions.Category) Filter {
	return Filter{Kind: FilterCategory, Category: c}
}

func AtDifficulty(d questions.Difficulty) Filter {
	return Filter{Kind: FilterDifficulty, Difficulty: d}
}

// InGroup matches every question whose category maps to group g.
func InGroup(g questions.Category) Filter {
	return Filter{Kind: FilterGroup, Category: g}
}

// Pool returns the questions in repo that match f, in repository order.
func (f Filter) Pool(repo *questions.Repository) []questions.Question {
	switch f.Kind {
	case FilterCategory:
		return repo.ByCategory(f.Category)
	case FilterDifficulty:
		return repo.ByDifficulty(f.Difficulty)
	case FilterGroup:
		return repo.ByGroup(f.Category)
	default:
		return repo.All()
	}
}

func (f Filter) String() string {
	switch f.Kind {
	case FilterCategory:
		return "category:" + string(f.Category)
	case FilterDifficulty:
		return "difficulty:" + string(f.Difficulty)
	case FilterGroup:
		return "group:" + string(f.Category)
	default:
		return "all"
	}
}

// Label is the filter as shown to the learner.
func (f Filter) Label() string {
	switch f.Kind {
	case FilterCategory, FilterGroup:
		return string(f.Category)
	case FilterDifficulty:
		return f.Difficulty.DisplayName()
	default:
		return "All Questions"
	}
}

// ParseFilter reads the form produced by Filter.String:
// "all", "category:<name>", "difficulty:<level>" or "group:<name>".
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllQuestions(), nil
	}
	kind, value, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(value) == "" {
		return Filter{}, fmt.Errorf("invalid filter %q", s)
	}
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "category":
		return InCategory(questions.Category(value)), nil
	case "difficulty":
		d, err := questions.ParseDifficulty(value)
		if err != nil {
			return Filter{}, err
		}
		return AtDifficulty(d), nil
	case "group":
		return InGroup(questions.Category(value)), nil
	}
	return Filter{}, fmt.Errorf("invalid filter kind %q", kind)
}
