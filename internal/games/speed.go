package games

import (
	"context"
	"time"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
)

const (
	// SpeedQuestions is how many questions a speed challenge draws.
	SpeedQuestions = 20

	// DefaultSpeedDuration is the speed challenge clock.
	DefaultSpeedDuration = 60 * time.Second
)

// SpeedPoints is the score for a correct answer with secondsLeft on the clock.
func SpeedPoints(secondsLeft int) int {
	if secondsLeft < 0 {
		secondsLeft = 0
	}
	return 10 + secondsLeft/10
}

// Speed is a timed run over the indicator deck. Every answer advances
// immediately; the presenter owns the clock and reports it with Tick.
type Speed struct {
	practice  *session.Practice
	duration  time.Duration
	remaining time.Duration
}

// SpeedOutcome is one judged answer in a speed challenge.
type SpeedOutcome struct {
	session.Outcome
	Points int
	Done   bool
}

// NewSpeed builds a speed challenge over deck. A non-positive duration
// uses DefaultSpeedDuration.
func NewSpeed(deck *questions.Repository, duration time.Duration, opts ...session.Option) *Speed {
	if duration <= 0 {
		duration = DefaultSpeedDuration
	}
	opts = append(opts, session.WithKind(session.KindSpeed), session.WithMode(session.ModeScoreAndProceed))
	return &Speed{
		practice:  session.NewPractice(deck, opts...),
		duration:  duration,
		remaining: duration,
	}
}

// Start draws a fresh set of questions and resets the clock.
func (g *Speed) Start(ctx context.Context) error {
	if err := g.practice.Start(ctx, session.AllQuestions(), SpeedQuestions); err != nil {
		return err
	}
	g.remaining = g.duration
	return nil
}

// Restart plays again with a new draw.
func (g *Speed) Restart(ctx context.Context) error {
	if err := g.practice.Restart(ctx); err != nil {
		return err
	}
	g.remaining = g.duration
	return nil
}

// Tick updates the remaining time. It returns true when the clock has run
// out, at which point the run is expired.
func (g *Speed) Tick(ctx context.Context, remaining time.Duration) bool {
	g.remaining = max(remaining, 0)
	if g.remaining > 0 || !g.practice.Active() {
		return false
	}
	g.practice.Expire(ctx)
	return true
}

// Answer judges c, awards time-bonus points and moves to the next question.
func (g *Speed) Answer(ctx context.Context, c questions.Choice) (SpeedOutcome, error) {
	out, err := g.practice.Submit(ctx, c)
	if err != nil {
		return SpeedOutcome{}, err
	}
	res := SpeedOutcome{Outcome: out}
	if out.Correct {
		res.Points = SpeedPoints(int(g.remaining / time.Second))
		g.practice.AddPoints(res.Points)
	}
	if err := g.practice.Next(ctx); err != nil {
		return res, err
	}
	res.Done = !g.practice.Active()
	return res, nil
}

// Quit ends the run early.
func (g *Speed) Quit(ctx context.Context) (session.Summary, bool) {
	return g.practice.EndEarly(ctx)
}

func (g *Speed) Current() (questions.Question, bool) { return g.practice.Current() }
func (g *Speed) Remaining() time.Duration            { return g.remaining }
func (g *Speed) Duration() time.Duration             { return g.duration }
func (g *Speed) Score() int                          { return g.practice.Points() }
func (g *Speed) Correct() int                        { return g.practice.Correct() }
func (g *Speed) Progress() float64                   { return g.practice.Progress() }
func (g *Speed) Active() bool                        { return g.practice.Active() }

// Index is the zero-based position of the current question.
func (g *Speed) Index() int {
	if s := g.practice.Session(); s != nil {
		return s.Index()
	}
	return 0
}

// Len is the number of questions drawn.
func (g *Speed) Len() int {
	if s := g.practice.Session(); s != nil {
		return s.Len()
	}
	return 0
}

// Summary is available once the run has ended.
func (g *Speed) Summary() (session.Summary, bool) { return g.practice.Summary() }
