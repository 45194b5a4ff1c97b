package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/router"
	"github.com/abhisek/stockmaster/internal/screens"
	"github.com/abhisek/stockmaster/internal/store"
)

type accuracyRepo struct {
	store.EventRepo
	stats []store.CategoryStat
	err   error
}

func (r accuracyRepo) CategoryAccuracy(context.Context) ([]store.CategoryStat, error) {
	return r.stats, r.err
}

func TestStatsScreen_NoProgress(t *testing.T) {
	bank, err := questions.NewBank(nil)
	require.NoError(t, err)
	s := New(&screens.Env{Bank: bank})
	assert.Contains(t, s.View(100, 40), "No progress yet")
}

func TestStatsScreen_TopicAccuracy(t *testing.T) {
	bank, err := questions.NewBank(nil)
	require.NoError(t, err)
	s := New(&screens.Env{Bank: bank, Events: accuracyRepo{stats: []store.CategoryStat{
		{Category: "RSI", Correct: 3, Total: 4},
	}}})

	s.Update(s.Init()())
	assert.True(t, s.loaded)
	require.Len(t, s.accuracy, 1)
	assert.Contains(t, s.topics(80), "75%")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestStatsScreen_LoadError(t *testing.T) {
	bank, _ := questions.NewBank(nil)
	s := New(&screens.Env{Bank: bank, Events: accuracyRepo{err: errors.New("db locked")}})
	s.Update(s.Init()())
	assert.Contains(t, s.topics(80), "db locked")
}

func TestPortfolioAndBestScores(t *testing.T) {
	bank, _ := questions.NewBank(nil)
	s := New(&screens.Env{Bank: bank})

	p := progress.New("Asha", time.Now())
	p.CompleteLesson(questions.Lesson{Day: 1, Trade: questions.Trade{Stock: "TCS", BuyPrice: 3500, SellPrice: 3550, Profit: 500}}, time.Now())
	p.BestScores["speed"] = 120

	out := s.portfolio(p)
	assert.Contains(t, out, "Trader: Asha")
	assert.Contains(t, out, "$10,500")
	assert.Contains(t, out, "+5.00%")
	assert.Contains(t, out, "TCS")

	best := bestScores(p)
	assert.Contains(t, best, "120 pts")
	assert.Contains(t, best, "Practice")
}
