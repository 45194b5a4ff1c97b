package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/stockmaster/internal/questions"
)

// TestPracticeScenarios runs the practice feature scenarios.
func TestPracticeScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "practice",
		ScenarioInitializer: InitializePracticeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("features", "practice.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializePracticeScenario wires the practice steps.
func InitializePracticeScenario(ctx *godog.ScenarioContext) {
	state := &practiceScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a pool of (\d+) questions$`, state.givenPool)
	ctx.Step(`^I start a session over all questions with (\d+) questions$`, state.whenStartAll)
	ctx.Step(`^I start a session in category "([^"]+)" with (\d+) questions$`, state.whenStartCategory)
	ctx.Step(`^I answer every question correctly$`, state.whenAnswerAllCorrectly)
	ctx.Step(`^I answer "([^"]+)" in order$`, state.whenAnswerInOrder)
	ctx.Step(`^I restart the session$`, state.whenRestart)
	ctx.Step(`^the session has (\d+) questions$`, state.thenSessionLength)
	ctx.Step(`^every question in the pool is in the session$`, state.thenWholePool)
	ctx.Step(`^the result is (\d+) correct out of (\d+) with (\d+) percent$`, state.thenResult)
	ctx.Step(`^the correct count is (\d+)$`, state.thenCorrectCount)
	ctx.Step(`^no session is started$`, state.thenNoSession)
	ctx.Step(`^I am told no questions are available$`, state.thenEmptyPool)
	ctx.Step(`^the question order differs from the previous session$`, state.thenOrderChanged)
}

type practiceScenarioState struct {
	pool      []questions.Question
	practice  *Practice
	startErr  error
	prevOrder []string
}

func (s *practiceScenarioState) reset() {
	*s = practiceScenarioState{}
}

func (s *practiceScenarioState) givenPool(n int) error {
	s.pool = testQuestions(n)
	repo, err := questions.NewRepository(s.pool)
	if err != nil {
		return err
	}
	s.practice = NewPractice(repo, WithSource(SeededSource(uint64(n))))
	return nil
}

func (s *practiceScenarioState) whenStartAll(count int) error {
	s.startErr = s.practice.Start(context.Background(), AllQuestions(), count)
	return s.startErr
}

func (s *practiceScenarioState) whenStartCategory(cat string, count int) error {
	s.startErr = s.practice.Start(context.Background(), InCategory(questions.Category(cat)), count)
	return nil
}

func (s *practiceScenarioState) answer(correct bool) error {
	ctx := context.Background()
	q, ok := s.practice.Current()
	if !ok {
		return errors.New("no current question")
	}
	c := wrongChoice(q)
	if correct {
		c = correctChoice(q)
	}
	if _, err := s.practice.Submit(ctx, c); err != nil {
		return err
	}
	return s.practice.Next(ctx)
}

func (s *practiceScenarioState) whenAnswerAllCorrectly() error {
	for s.practice.Active() {
		if err := s.answer(true); err != nil {
			return err
		}
	}
	return nil
}

func (s *practiceScenarioState) whenAnswerInOrder(list string) error {
	for _, word := range strings.Split(list, ",") {
		switch strings.TrimSpace(word) {
		case "right":
			if err := s.answer(true); err != nil {
				return err
			}
		case "wrong":
			if err := s.answer(false); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown answer %q", word)
		}
	}
	return nil
}

func (s *practiceScenarioState) whenRestart() error {
	s.prevOrder = questionIDs(s.practice.Session().Questions())
	return s.practice.Restart(context.Background())
}

func (s *practiceScenarioState) thenSessionLength(n int) error {
	if got := s.practice.Session().Len(); got != n {
		return fmt.Errorf("session has %d questions, want %d", got, n)
	}
	return nil
}

func (s *practiceScenarioState) thenWholePool() error {
	got := questionIDs(s.practice.Session().Questions())
	slices.Sort(got)
	want := questionIDs(s.pool)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		return fmt.Errorf("session questions %v, want %v", got, want)
	}
	return nil
}

func (s *practiceScenarioState) thenResult(correct, total, pct int) error {
	res, err := s.practice.Result()
	if err != nil {
		return err
	}
	want := Result{Correct: correct, Total: total, Percentage: pct}
	if res != want {
		return fmt.Errorf("result %+v, want %+v", res, want)
	}
	return nil
}

func (s *practiceScenarioState) thenCorrectCount(n int) error {
	if got := s.practice.Correct(); got != n {
		return fmt.Errorf("correct count %d, want %d", got, n)
	}
	return nil
}

func (s *practiceScenarioState) thenNoSession() error {
	if s.practice.Session() != nil || s.practice.Active() {
		return errors.New("a session was started")
	}
	return nil
}

func (s *practiceScenarioState) thenEmptyPool() error {
	if !errors.Is(s.startErr, ErrEmptyPool) {
		return fmt.Errorf("start error %v, want ErrEmptyPool", s.startErr)
	}
	return nil
}

func (s *practiceScenarioState) thenOrderChanged() error {
	got := questionIDs(s.practice.Session().Questions())
	if slices.Equal(got, s.prevOrder) {
		return fmt.Errorf("order %v did not change", got)
	}
	return nil
}

func questionIDs(qs []questions.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
