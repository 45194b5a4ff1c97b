// Package lesson runs the daily curriculum. A day moves through its
// theory, a short quiz, a scenario challenge and finally the simulated
// trade it unlocks.
package lesson

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screen"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/screens/practice"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/ui/components"
	"github.com/abhisek/stockmaster/internal/ui/layout"
)

type stage int

const (
	stageIntro     stage = iota // Picking a day
	stageTheory                 // Reading the day's points
	stageChallenge              // Quiz passed, scenario question open
	stageDone                   // Trade credited
)

// LessonScreen walks one day of the curriculum.
type LessonScreen struct {
	env     *screens.Env
	lessons *questions.Repository
	total   int

	// day is the lesson being shown. Days up to the current one can be
	// replayed.
	day      int
	unlocked int

	stage  stage
	lesson questions.Lesson

	choices components.ChoiceList
	// solved is set once the challenge has been answered correctly.
	solved bool

	result *progress.LessonResult
	errMsg string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.BackHandler = (*LessonScreen)(nil)

// New opens on the learner's current day.
func New(env *screens.Env) *LessonScreen {
	lessons := env.Bank.Deck(questions.DeckLessons)
	s := &LessonScreen{env: env, lessons: lessons, total: progress.LessonsTotal(lessons)}

	current := 1
	if p := env.Progress(); p != nil {
		current = p.CurrentDay
	}
	s.unlocked = min(current, s.total)
	s.day = s.unlocked
	return s
}

func (s *LessonScreen) Init() tea.Cmd { return nil }

func (s *LessonScreen) Title() string { return "Daily Lesson" }

// HandlesBack keeps Esc inside the lesson once a day has been opened.
func (s *LessonScreen) HandlesBack() bool {
	return s.stage == stageTheory || s.stage == stageChallenge
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.stage {
	case stageTheory:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Take the quiz"},
			{Key: "Esc", Description: "Back"},
		}
	case stageChallenge:
		if s.choices.Revealed() {
			return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
		}
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "Esc", Description: "Leave"},
		}
	case stageDone:
		return []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start lesson"},
		{Key: "←/→", Description: "Change day"},
		{Key: "Esc", Description: "Back"},
	}
}

// allDone reports whether every lesson has been completed.
func (s *LessonScreen) allDone() bool {
	p := s.env.Progress()
	return p != nil && s.total > 0 && p.CurrentDay > s.total
}

func (s *LessonScreen) current() (questions.Question, bool) {
	return s.lessons.ByDay(s.day)
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch s.stage {
	case stageDone:
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	case stageTheory:
		switch kmsg.String() {
		case "enter", " ":
			return s, s.startQuiz()
		case "esc":
			s.stage = stageIntro
		}
		return s, nil
	case stageChallenge:
		return s, s.updateChallenge(kmsg)
	}

	switch kmsg.String() {
	case "left", "h":
		if s.day > 1 {
			s.day--
			s.errMsg = ""
		}
	case "right", "l":
		if s.day < s.unlocked {
			s.day++
			s.errMsg = ""
		}
	case "enter", " ":
		q, ok := s.current()
		if !ok {
			s.errMsg = fmt.Sprintf("Lesson for day %d is missing.", s.day)
			return s, nil
		}
		s.lesson = *q.Lesson
		s.stage = stageTheory
	}
	return s, nil
}

func (s *LessonScreen) startQuiz() tea.Cmd {
	day, lessons, src := s.day, s.lessons, s.env.Source()

	p := session.NewPractice(lessons, s.env.Options(
		session.WithKind(session.KindLesson),
		session.WithMode(session.ModeRetryUntilCorrect),
	)...)
	err := p.StartWith(context.Background(), fmt.Sprintf("lesson:day-%d", day), func() ([]questions.Question, error) {
		return session.BuildLessonQuiz(lessons, day, session.DefaultReviews, src)
	})
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	quiz := practice.New(s.env, p,
		practice.WithTitle(fmt.Sprintf("Day %d · %s", s.lesson.Day, s.lesson.Title)),
		practice.OnComplete(func(session.Summary) tea.Cmd {
			s.quizPassed()
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	)
	return func() tea.Msg { return router.PushScreenMsg{Screen: quiz} }
}

// quizPassed opens the challenge, or credits the lesson straight away
// when the day has none.
func (s *LessonScreen) quizPassed() {
	c := s.lesson.Challenge
	if c == nil {
		s.complete()
		return
	}
	s.stage = stageChallenge
	s.solved = false
	s.choices = components.NewChoiceList(questions.Question{
		Answer: questions.MultipleChoice{Options: c.Options, Correct: c.Correct},
	})
}

// updateChallenge judges a challenge answer. A wrong answer is shown and
// then cleared for another try.
func (s *LessonScreen) updateChallenge(kmsg tea.KeyMsg) tea.Cmd {
	if s.choices.Revealed() {
		if s.solved {
			if kmsg.String() == "enter" || kmsg.String() == " " {
				s.complete()
			}
			return nil
		}
		s.choices.Reset()
		return nil
	}
	if kmsg.String() == "esc" {
		s.stage = stageIntro
		return nil
	}

	choices, c, answered := s.choices.Update(kmsg)
	s.choices = choices
	if !answered {
		return nil
	}
	s.solved = s.lesson.Challenge.IsCorrect(c.Index())
	s.choices.Reveal()
	return nil
}

// complete credits the lesson and shows the trade.
func (s *LessonScreen) complete() {
	l := s.lesson
	var (
		res progress.LessonResult
		err error
	)
	if s.env.Tracker != nil {
		res, err = s.env.Tracker.CompleteLesson(context.Background(), l)
	} else {
		res = progress.New("", time.Now()).CompleteLesson(l, time.Now())
	}
	if err != nil {
		s.env.Log().Error("save lesson", "day", l.Day, "error", err)
		s.errMsg = "Progress could not be saved: " + err.Error()
	}
	s.result = &res
	s.stage = stageDone
}
