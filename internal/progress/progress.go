package progress

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/store"
)

const (
	// StartingBalance is the virtual cash a new learner starts with.
	StartingBalance = 10000

	// XPPerCorrect is awarded for each correct answer in a practice or game session.
	XPPerCorrect = 10

	// A completed lesson awards XP for each of its stages.
	XPLessonQuiz      = 50
	XPLessonChallenge = 50
	XPLessonTrade     = 50

	// PerfectSessionMin is the smallest practice session that can earn
	// the perfect_session achievement.
	PerfectSessionMin = 5
)

// Achievement IDs.
const (
	AchievementFirstProfit    = "first_profit"
	AchievementPerfectSession = "perfect_session"
)

// StreakAchievement names the achievement for an in-session streak milestone.
func StreakAchievement(n int) string {
	return fmt.Sprintf("streak_%d", n)
}

// Trade is a simulated trade credited by a completed lesson.
type Trade struct {
	Day       int
	Stock     string
	BuyPrice  int
	SellPrice int
	Profit    int
	Date      time.Time
}

// Progress is the learner's single save slot.
type Progress struct {
	Name         string
	CurrentDay   int
	Balance      int
	XP           int
	Trades       []Trade
	Achievements []string

	// Streak counts lesson completions.
	Streak int

	// BestScores holds the best score per session kind.
	BestScores map[session.Kind]int
	LastPlayed time.Time
}

// New returns fresh progress for a learner.
func New(name string, now time.Time) *Progress {
	return &Progress{
		Name:       name,
		CurrentDay: 1,
		Balance:    StartingBalance,
		BestScores: make(map[session.Kind]int),
		LastPlayed: now,
	}
}

// Stats are figures derived from the trade history.
type Stats struct {
	TotalProfit int

	// Accuracy is the percentage of trades that made money.
	Accuracy int

	// ProfitPercentage is the return on the starting balance.
	ProfitPercentage float64
	TradesCount      int
}

// CalculateStats derives Stats from p.
func CalculateStats(p *Progress) Stats {
	var st Stats
	wins := 0
	for _, t := range p.Trades {
		st.TotalProfit += t.Profit
		if t.Profit > 0 {
			wins++
		}
	}
	st.TradesCount = len(p.Trades)
	st.Accuracy = session.Percentage(wins, len(p.Trades))
	pct := float64(p.Balance-StartingBalance) / StartingBalance * 100
	st.ProfitPercentage = math.Round(pct*100) / 100
	return st
}

// HasAchievement reports whether id is unlocked.
func (p *Progress) HasAchievement(id string) bool {
	return slices.Contains(p.Achievements, id)
}

// Unlock adds an achievement. It returns false if it was already unlocked.
func (p *Progress) Unlock(id string) bool {
	if id == "" || p.HasAchievement(id) {
		return false
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

// RecordScore keeps the best score per kind and reports a new best.
func (p *Progress) RecordScore(kind session.Kind, score int) bool {
	if p.BestScores == nil {
		p.BestScores = make(map[session.Kind]int)
	}
	if prev, ok := p.BestScores[kind]; ok && prev >= score {
		return false
	}
	p.BestScores[kind] = score
	return true
}

// LessonResult describes what completing a lesson changed.
type LessonResult struct {
	Day          int
	Trade        *Trade
	XP           int
	AdvancedDay  bool
	Achievements []string
}

// CompleteLesson applies a finished lesson: its trade is credited to the
// balance, the day advances if it was the current one, and the lesson
// streak grows. Trades with zero profit are practice trades and are not
// kept in the history. The challenge stage is retried until answered,
// so its XP is earned whenever the lesson has one.
func (p *Progress) CompleteLesson(l questions.Lesson, now time.Time) LessonResult {
	res := LessonResult{Day: l.Day, XP: XPLessonQuiz + XPLessonTrade}
	if l.Challenge != nil {
		res.XP += XPLessonChallenge
	}

	if l.Badge != "" && p.Unlock(l.Badge) {
		res.Achievements = append(res.Achievements, l.Badge)
	}
	if len(p.Trades) == 0 && l.Trade.Profit > 0 && p.Unlock(AchievementFirstProfit) {
		res.Achievements = append(res.Achievements, AchievementFirstProfit)
	}

	p.Balance += l.Trade.Profit
	if l.Trade.Profit != 0 {
		t := Trade{
			Day:       l.Day,
			Stock:     l.Trade.Stock,
			BuyPrice:  l.Trade.BuyPrice,
			SellPrice: l.Trade.SellPrice,
			Profit:    l.Trade.Profit,
			Date:      now,
		}
		p.Trades = append(p.Trades, t)
		res.Trade = &t
	}
	if l.Day == p.CurrentDay {
		p.CurrentDay++
		res.AdvancedDay = true
	}
	p.XP += res.XP
	p.Streak++
	p.LastPlayed = now
	return res
}

// ApplySession credits a finished practice or game session and returns
// any achievements it unlocked. Lesson runs earn their XP through
// CompleteLesson instead.
func (p *Progress) ApplySession(kind session.Kind, sum session.Summary, now time.Time) []string {
	var unlocked []string
	if kind != session.KindLesson {
		p.XP += sum.Result.Correct * XPPerCorrect
	}
	p.LastPlayed = now

	if kind == session.KindPractice && sum.Reason == session.EndCompleted &&
		sum.Result.Total >= PerfectSessionMin && sum.Result.Percentage == 100 {
		if p.Unlock(AchievementPerfectSession) {
			unlocked = append(unlocked, AchievementPerfectSession)
		}
	}

	for m := session.StreakStep; m <= sum.BestStreak; m += session.StreakStep {
		if id := StreakAchievement(m); p.Unlock(id) {
			unlocked = append(unlocked, id)
		}
	}

	switch kind {
	case session.KindSpeed, session.KindSwipe:
		p.RecordScore(kind, sum.Points)
	case session.KindPractice:
		p.RecordScore(kind, sum.Result.Percentage)
	}
	return unlocked
}

// LessonsTotal is the number of curriculum days available.
func LessonsTotal(lessons *questions.Repository) int {
	n := 0
	for _, q := range lessons.All() {
		if q.Lesson != nil {
			n = max(n, q.Lesson.Day)
		}
	}
	return n
}

// toSnapshot converts p to its stored form.
func toSnapshot(p *Progress) *store.ProgressSnapshot {
	ps := &store.ProgressSnapshot{
		Name:         p.Name,
		CurrentDay:   p.CurrentDay,
		Balance:      p.Balance,
		XP:           p.XP,
		Achievements: slices.Clone(p.Achievements),
		Streak:       p.Streak,
		LastPlayed:   p.LastPlayed,
	}
	for _, t := range p.Trades {
		ps.Trades = append(ps.Trades, store.TradeSnapshot{
			Day:       t.Day,
			Stock:     t.Stock,
			BuyPrice:  t.BuyPrice,
			SellPrice: t.SellPrice,
			Profit:    t.Profit,
			Date:      t.Date,
		})
	}
	if len(p.BestScores) > 0 {
		ps.BestScores = make(map[string]int, len(p.BestScores))
		for k, v := range p.BestScores {
			ps.BestScores[string(k)] = v
		}
	}
	return ps
}

// fromSnapshot restores progress, filling defaults for missing fields.
func fromSnapshot(ps *store.ProgressSnapshot) *Progress {
	p := New(ps.Name, ps.LastPlayed)
	if ps.CurrentDay > 0 {
		p.CurrentDay = ps.CurrentDay
	}
	p.Balance = ps.Balance
	p.XP = ps.XP
	p.Achievements = slices.Clone(ps.Achievements)
	p.Streak = ps.Streak
	for _, t := range ps.Trades {
		p.Trades = append(p.Trades, Trade{
			Day:       t.Day,
			Stock:     t.Stock,
			BuyPrice:  t.BuyPrice,
			SellPrice: t.SellPrice,
			Profit:    t.Profit,
			Date:      t.Date,
		})
	}
	for k, v := range ps.BestScores {
		p.BestScores[session.Kind(k)] = v
	}
	return p
}
