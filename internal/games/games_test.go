package games

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
)

func indicatorDeck(n int) *questions.Repository {
	qs := make([]questions.Question, n)
	for i := range qs {
		qs[i] = questions.Question{
			ID:         fmt.Sprintf("ind-%d", i),
			Prompt:     "Which?",
			Answer:     questions.MultipleChoice{Options: []string{"a", "b", "c", "d"}, Correct: i % 4},
			Category:   "RSI",
			Difficulty: questions.Beginner,
		}
	}
	return questions.MustRepository(qs)
}

func swipeDeck(sides ...questions.Side) *questions.Repository {
	qs := make([]questions.Question, len(sides))
	for i, s := range sides {
		qs[i] = questions.Question{
			ID:         fmt.Sprintf("swipe-%d", i),
			Prompt:     "Scenario",
			Answer:     questions.BinaryChoice{Correct: s},
			Category:   questions.General,
			Difficulty: questions.Intermediate,
		}
	}
	return questions.MustRepository(qs)
}

func rightIndex(q questions.Question) questions.Choice {
	return questions.ChooseIndex(q.Answer.(questions.MultipleChoice).Correct)
}

func rightSide(q questions.Question) questions.Side {
	return q.Answer.(questions.BinaryChoice).Correct
}

func otherSide(s questions.Side) questions.Side {
	if s == questions.Buy {
		return questions.Sell
	}
	return questions.Buy
}

func TestSpeedPoints(t *testing.T) {
	assert.Equal(t, 16, SpeedPoints(60))
	assert.Equal(t, 15, SpeedPoints(59))
	assert.Equal(t, 10, SpeedPoints(9))
	assert.Equal(t, 10, SpeedPoints(-3))
}

func TestSpeed_DrawsTwenty(t *testing.T) {
	ctx := context.Background()
	g := NewSpeed(indicatorDeck(50), 0, session.WithSource(session.SeededSource(1)))
	require.NoError(t, g.Start(ctx))

	assert.Equal(t, SpeedQuestions, g.Len())
	assert.Equal(t, DefaultSpeedDuration, g.Remaining())
}

func TestSpeed_ScoresWithTimeBonus(t *testing.T) {
	ctx := context.Background()
	g := NewSpeed(indicatorDeck(3), time.Minute, session.WithSource(session.SeededSource(2)))
	require.NoError(t, g.Start(ctx))

	assert.False(t, g.Tick(ctx, 45*time.Second))
	q, ok := g.Current()
	require.True(t, ok)
	out, err := g.Answer(ctx, rightIndex(q))
	require.NoError(t, err)
	assert.Equal(t, 14, out.Points)
	assert.Equal(t, 1, g.Index(), "answers advance immediately")

	q, _ = g.Current()
	wrong := questions.ChooseIndex((q.Answer.(questions.MultipleChoice).Correct + 1) % 4)
	out, err = g.Answer(ctx, wrong)
	require.NoError(t, err)
	assert.Zero(t, out.Points)
	assert.Equal(t, 14, g.Score())
}

func TestSpeed_ExpiresOnClock(t *testing.T) {
	ctx := context.Background()
	g := NewSpeed(indicatorDeck(10), 30*time.Second, session.WithSource(session.SeededSource(3)))
	require.NoError(t, g.Start(ctx))

	q, _ := g.Current()
	_, err := g.Answer(ctx, rightIndex(q))
	require.NoError(t, err)

	assert.True(t, g.Tick(ctx, 0))
	assert.False(t, g.Active())
	assert.False(t, g.Tick(ctx, 0), "an expired run only expires once")

	sum, ok := g.Summary()
	require.True(t, ok)
	assert.Equal(t, session.EndExpired, sum.Reason)
	assert.Equal(t, session.Result{Correct: 1, Total: 1, Percentage: 100}, sum.Result)
	assert.Equal(t, SpeedPoints(30), sum.Points)

	_, err = g.Answer(ctx, questions.ChooseIndex(0))
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestSpeed_CompletesBeforeClock(t *testing.T) {
	ctx := context.Background()
	g := NewSpeed(indicatorDeck(2), time.Minute, session.WithSource(session.SeededSource(4)))
	require.NoError(t, g.Start(ctx))

	var out SpeedOutcome
	for g.Active() {
		q, _ := g.Current()
		var err error
		out, err = g.Answer(ctx, rightIndex(q))
		require.NoError(t, err)
	}
	assert.True(t, out.Done)

	sum, ok := g.Summary()
	require.True(t, ok)
	assert.Equal(t, session.EndCompleted, sum.Reason)
	assert.Equal(t, 2*SpeedPoints(60), sum.Points)
}

func TestSwipePoints(t *testing.T) {
	assert.Equal(t, 10, SwipePoints(0))
	assert.Equal(t, 12, SwipePoints(1))
	assert.Equal(t, 20, SwipePoints(5))
}

func TestSwipe_StreakScoring(t *testing.T) {
	ctx := context.Background()
	g := NewSwipe(swipeDeck(questions.Buy, questions.Sell, questions.Buy, questions.Sell),
		session.WithSource(session.SeededSource(5)))
	require.NoError(t, g.Start(ctx))

	// right, right, wrong, right: 10 + 12 + 0 + 10
	plan := []bool{true, true, false, true}
	var points []int
	for _, right := range plan {
		q, ok := g.Current()
		require.True(t, ok)
		side := rightSide(q)
		if !right {
			side = otherSide(side)
		}
		out, err := g.Answer(ctx, side)
		require.NoError(t, err)
		points = append(points, out.Points)
	}
	assert.Equal(t, []int{10, 12, 0, 10}, points)
	assert.Equal(t, 32, g.Score())

	res, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, SwipeResult{Score: 32, Correct: 3, Total: 4, Accuracy: 75, ScorePercentage: 80}, res)
}

func TestSwipe_CapsScenarios(t *testing.T) {
	sides := make([]questions.Side, 40)
	for i := range sides {
		sides[i] = questions.Buy
	}
	g := NewSwipe(swipeDeck(sides...), session.WithSource(session.SeededSource(6)))
	require.NoError(t, g.Start(context.Background()))
	assert.Equal(t, SwipeScenarios, g.Len())
}

func TestSwipeResult_CanExceedHundred(t *testing.T) {
	res := NewSwipeResult(130, 10, 10)
	assert.Equal(t, 100, res.Accuracy)
	assert.Equal(t, 130, res.ScorePercentage)
}

func TestSwipe_EmptyDeck(t *testing.T) {
	g := NewSwipe(questions.MustRepository(nil))
	err := g.Start(context.Background())
	assert.ErrorIs(t, err, session.ErrEmptyPool)
}
