// Package screens holds what every screen needs to start sessions and
// read progress. The screens themselves live in the subpackages.
package screens

import (
	"log/slog"
	"time"

	"github.com/abhisek/stockmaster/internal/games"
	"github.com/abhisek/stockmaster/internal/progress"
	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/store"
	"github.com/abhisek/stockmaster/internal/ui/layout"
)

// Env is shared by every screen of one program run.
type Env struct {
	Bank    *questions.Bank
	Tracker *progress.Tracker
	Events  store.EventRepo
	Logger  *slog.Logger

	QuestionCount int
	SpeedDuration time.Duration

	// Seed makes every session reproducible when set.
	Seed *uint64
}

// Source returns the sampling source for a new session.
func (e *Env) Source() session.Source {
	if e.Seed != nil {
		return session.SeededSource(*e.Seed)
	}
	return session.NewSource()
}

// Options returns the controller options shared by every session.
func (e *Env) Options(extra ...session.Option) []session.Option {
	opts := []session.Option{session.WithSource(e.Source())}
	if e.Tracker != nil {
		opts = append(opts, session.WithRecorder(e.Tracker))
	}
	return append(opts, extra...)
}

// Progress returns the loaded save slot, or nil.
func (e *Env) Progress() *progress.Progress {
	if e.Tracker == nil {
		return nil
	}
	return e.Tracker.Progress()
}

// HeaderStats summarises the save slot for the header bar.
func (e *Env) HeaderStats() layout.HeaderStats {
	p := e.Progress()
	if p == nil {
		return layout.HeaderStats{}
	}
	return layout.HeaderStats{XP: p.XP, Balance: p.Balance, Streak: p.Streak}
}

// Count is the default practice length.
func (e *Env) Count() int {
	if e.QuestionCount <= 0 {
		return 10
	}
	return e.QuestionCount
}

// SpeedClock is the speed challenge budget.
func (e *Env) SpeedClock() time.Duration {
	if e.SpeedDuration <= 0 {
		return games.DefaultSpeedDuration
	}
	return e.SpeedDuration
}

// Log returns the logger, never nil.
func (e *Env) Log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}
