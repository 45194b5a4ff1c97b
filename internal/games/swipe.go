package games

import (
	"context"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
)

// SwipeScenarios caps how many scenarios one swipe game uses.
const SwipeScenarios = 30

// SwipePoints is the score for a correct swipe made on a streak of
// streakBefore correct answers.
func SwipePoints(streakBefore int) int {
	return 10 + streakBefore*2
}

// Swipe is the BUY/SELL scenario game. Streaks multiply the points.
type Swipe struct {
	practice *session.Practice
}

// SwipeOutcome is one judged swipe.
type SwipeOutcome struct {
	session.Outcome
	Points int
	Done   bool
}

func NewSwipe(deck *questions.Repository, opts ...session.Option) *Swipe {
	opts = append(opts, session.WithKind(session.KindSwipe), session.WithMode(session.ModeScoreAndProceed))
	return &Swipe{practice: session.NewPractice(deck, opts...)}
}

// Start shuffles up to SwipeScenarios scenarios into a new game.
func (g *Swipe) Start(ctx context.Context) error {
	return g.practice.Start(ctx, session.AllQuestions(), SwipeScenarios)
}

func (g *Swipe) Restart(ctx context.Context) error {
	return g.practice.Restart(ctx)
}

// Answer takes a BUY or SELL swipe on the current scenario and moves on.
func (g *Swipe) Answer(ctx context.Context, side questions.Side) (SwipeOutcome, error) {
	streak := 0
	if s := g.practice.Session(); s != nil {
		streak = s.Streak()
	}
	out, err := g.practice.Submit(ctx, questions.ChooseSide(side))
	if err != nil {
		return SwipeOutcome{}, err
	}
	res := SwipeOutcome{Outcome: out}
	if out.Correct {
		res.Points = SwipePoints(streak)
		g.practice.AddPoints(res.Points)
	}
	if err := g.practice.Next(ctx); err != nil {
		return res, err
	}
	res.Done = !g.practice.Active()
	return res, nil
}

// Quit ends the game early.
func (g *Swipe) Quit(ctx context.Context) (session.Summary, bool) {
	return g.practice.EndEarly(ctx)
}

func (g *Swipe) Current() (questions.Question, bool) { return g.practice.Current() }
func (g *Swipe) Score() int                          { return g.practice.Points() }
func (g *Swipe) Correct() int                        { return g.practice.Correct() }
func (g *Swipe) Active() bool                        { return g.practice.Active() }
func (g *Swipe) Progress() float64                   { return g.practice.Progress() }

func (g *Swipe) Streak() int {
	if s := g.practice.Session(); s != nil {
		return s.Streak()
	}
	return 0
}

func (g *Swipe) Index() int {
	if s := g.practice.Session(); s != nil {
		return s.Index()
	}
	return 0
}

func (g *Swipe) Len() int {
	if s := g.practice.Session(); s != nil {
		return s.Len()
	}
	return 0
}

// Summary is available once the game has ended.
func (g *Swipe) Summary() (session.Summary, bool) { return g.practice.Summary() }

// SwipeResult is the final tally shown after a swipe game.
type SwipeResult struct {
	Score    int
	Correct  int
	Total    int
	Accuracy int

	// ScorePercentage is score against 10 points per scenario. Streak
	// bonuses can push it past 100.
	ScorePercentage int
}

// Result reports the final tally of an ended game.
func (g *Swipe) Result() (SwipeResult, bool) {
	sum, ok := g.practice.Summary()
	if !ok {
		return SwipeResult{}, false
	}
	return NewSwipeResult(sum.Points, sum.Result.Correct, sum.Result.Total), true
}

func NewSwipeResult(score, correct, total int) SwipeResult {
	return SwipeResult{
		Score:           score,
		Correct:         correct,
		Total:           total,
		Accuracy:        session.Percentage(correct, total),
		ScorePercentage: session.Percentage(score, total*10),
	}
}
