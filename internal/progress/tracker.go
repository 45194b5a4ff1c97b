package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/stockmaster/internal/questions"
	"github.com/abhisek/stockmaster/internal/session"
	"github.com/abhisek/stockmaster/internal/store"
)

// SnapshotVersion is written into every saved snapshot.
const SnapshotVersion = 1

// snapshotsKept is how many snapshots survive a save.
const snapshotsKept = 1

// Tracker persists the save slot and the event log. It implements
// session.Recorder so every practice, game and lesson run is recorded.
type Tracker struct {
	events   store.EventRepo
	snaps    store.SnapshotRepo
	logger   *slog.Logger
	now      func() time.Time
	progress *Progress
	unlocked []string
}

var _ session.Recorder = (*Tracker)(nil)

// NewTracker returns a tracker. A nil logger discards log output.
func NewTracker(events store.EventRepo, snaps store.SnapshotRepo, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		events: events,
		snaps:  snaps,
		logger: logger,
		now:    time.Now,
	}
}

// Load reads the save slot. found is false when there is no saved progress.
func (t *Tracker) Load(ctx context.Context) (found bool, err error) {
	snap, err := t.snaps.Latest(ctx)
	if err != nil {
		return false, fmt.Errorf("load progress: %w", err)
	}
	if snap == nil || snap.Data.Progress == nil {
		t.progress = nil
		return false, nil
	}
	t.progress = fromSnapshot(snap.Data.Progress)
	return true, nil
}

// Progress returns the loaded progress, or nil before Load or Create.
func (t *Tracker) Progress() *Progress { return t.progress }

// Create starts a new save slot for name and saves it.
func (t *Tracker) Create(ctx context.Context, name string) error {
	t.progress = New(name, t.now())
	return t.Save(ctx)
}

// Save writes the current progress as the newest snapshot and prunes
// older ones.
func (t *Tracker) Save(ctx context.Context) error {
	if t.progress == nil {
		return errors.New("no progress to save")
	}
	seq, err := t.events.LatestSequence(ctx)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: t.now(),
		Data: store.SnapshotData{
			Version:  SnapshotVersion,
			Progress: toSnapshot(t.progress),
		},
	}
	if err := t.snaps.Save(ctx, snap); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if err := t.snaps.Prune(ctx, snapshotsKept); err != nil {
		t.logger.Warn("prune snapshots failed", "err", err)
	}
	return nil
}

// Reset clears the save slot.
func (t *Tracker) Reset(ctx context.Context) error {
	if err := t.snaps.Clear(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	t.progress = nil
	t.logger.Info("progress reset")
	return nil
}

// CompleteLesson applies a finished lesson and saves.
func (t *Tracker) CompleteLesson(ctx context.Context, l questions.Lesson) (LessonResult, error) {
	p := t.ensure()
	res := p.CompleteLesson(l, t.now())
	t.logger.Info("lesson completed",
		"day", l.Day,
		"profit", l.Trade.Profit,
		"balance", p.Balance,
		"achievements", res.Achievements,
	)
	return res, t.Save(ctx)
}

// LastUnlocked returns the achievements unlocked by the last ended session.
func (t *Tracker) LastUnlocked() []string { return t.unlocked }

func (t *Tracker) ensure() *Progress {
	if t.progress == nil {
		t.progress = New("", t.now())
	}
	return t.progress
}

func (t *Tracker) SessionStarted(ctx context.Context, info session.SessionInfo) error {
	t.unlocked = nil
	err := t.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       info.ID,
		Kind:            string(info.Kind),
		Action:          "start",
		Filter:          info.Filter,
		QuestionsServed: info.Total,
	})
	if err != nil {
		t.logger.Warn("record session start failed", "session_id", info.ID, "err", err)
		return err
	}
	t.logger.Debug("session started", "session_id", info.ID, "kind", info.Kind, "filter", info.Filter, "total", info.Total)
	return nil
}

func (t *Tracker) AnswerRecorded(ctx context.Context, info session.SessionInfo, rec session.AnswerRecord) error {
	err := t.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:  info.ID,
		QuestionID: rec.Question.ID,
		Category:   string(rec.Question.Category),
		Difficulty: string(rec.Question.Difficulty),
		Correct:    rec.Correct,
		Attempt:    rec.Attempt,
		TimeMs:     rec.Elapsed.Milliseconds(),
	})
	if err != nil {
		t.logger.Warn("record answer failed", "session_id", info.ID, "question_id", rec.Question.ID, "err", err)
		return err
	}
	return nil
}

func (t *Tracker) SessionEnded(ctx context.Context, info session.SessionInfo, sum session.Summary) error {
	var errs []error
	err := t.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       info.ID,
		Kind:            string(info.Kind),
		Action:          sum.Reason.Action(),
		Filter:          info.Filter,
		QuestionsServed: sum.Result.Total,
		CorrectAnswers:  sum.Result.Correct,
		Score:           sum.Points,
		DurationSecs:    int(sum.Elapsed.Seconds()),
	})
	if err != nil {
		t.logger.Warn("record session end failed", "session_id", info.ID, "err", err)
		errs = append(errs, err)
	}

	t.unlocked = t.ensure().ApplySession(info.Kind, sum, t.now())
	t.logger.Info("session ended",
		"session_id", info.ID,
		"kind", info.Kind,
		"action", sum.Reason.Action(),
		"correct", sum.Result.Correct,
		"total", sum.Result.Total,
		"points", sum.Points,
		"unlocked", t.unlocked,
	)

	if err := t.Save(ctx); err != nil {
		t.logger.Warn("save progress failed", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
