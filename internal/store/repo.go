package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Kind   string    // session kind, empty for all
}

// SessionEventData records a session start or end.
type SessionEventData struct {
	SessionID       string
	Kind            string // practice, speed, swipe or lesson
	Action          string // start, end, abandon or timeout
	Filter          string
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	DurationSecs    int
}

// AnswerEventData records one judged answer.
type AnswerEventData struct {
	SessionID  string
	QuestionID string
	Category   string
	Difficulty string
	Correct    bool
	Attempt    int
	TimeMs     int64
}

// SessionSummaryRecord is one finished session as listed in history.
type SessionSummaryRecord struct {
	SessionID       string
	Kind            string
	Action          string
	Filter          string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	DurationSecs    int
	Sequence        int64
}

// CategoryStat is the lifetime answer tally for one category.
type CategoryStat struct {
	Category string
	Correct  int
	Total    int
}

// EventRepo provides append and query access to session events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// CategoryAccuracy tallies first attempts per category, sorted by category.
	CategoryAccuracy(ctx context.Context) ([]CategoryStat, error)

	// LatestSequence returns the last sequence handed to an event.
	LatestSequence(ctx context.Context) (int64, error)
}

// SnapshotData captures the learner's save slot at a point in time.
type SnapshotData struct {
	Version  int               `json:"version"`
	Progress *ProgressSnapshot `json:"progress,omitempty"`
}

// ProgressSnapshot is the persisted form of the learner's progress.
type ProgressSnapshot struct {
	Name         string          `json:"name"`
	CurrentDay   int             `json:"current_day"`
	Balance      int             `json:"balance"`
	XP           int             `json:"xp"`
	Trades       []TradeSnapshot `json:"trades,omitempty"`
	Achievements []string        `json:"achievements,omitempty"`
	Streak       int             `json:"streak"`
	BestScores   map[string]int  `json:"best_scores,omitempty"`
	LastPlayed   time.Time       `json:"last_played"`
}

// TradeSnapshot is one completed lesson trade.
type TradeSnapshot struct {
	Day       int       `json:"day"`
	Stock     string    `json:"stock"`
	BuyPrice  int       `json:"buy_price"`
	SellPrice int       `json:"sell_price"`
	Profit    int       `json:"profit"`
	Date      time.Time `json:"date"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}
