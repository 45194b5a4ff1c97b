package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builder.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableSessionEvents).
		Columns("sequence", "timestamp", "session_id", "kind", "action", "filter",
			"questions_served", "correct_answers", "score", "duration_secs").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Kind, data.Action, data.Filter,
			data.QuestionsServed, data.CorrectAnswers, data.Score, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	attempt := max(data.Attempt, 1)
	query, args := builder().Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "question_id", "category",
			"difficulty", "correct", "attempt", "time_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.QuestionID, data.Category,
			data.Difficulty, data.Correct, attempt, data.TimeMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().Select("session_id", "kind", "action", "filter", "timestamp",
		"questions_served", "correct_answers", "score", "duration_secs", "sequence").
		From(entsql.Table(tableSessionEvents))

	preds := []*entsql.Predicate{entsql.NEQ("action", "start")}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ("kind", opts.Kind))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	sel.Where(entsql.And(preds...)).OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(&rec.SessionID, &rec.Kind, &rec.Action, &rec.Filter, &rec.Timestamp,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.Score, &rec.DurationSecs, &rec.Sequence); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	return records, nil
}

func (r *eventRepo) CategoryAccuracy(ctx context.Context) ([]CategoryStat, error) {
	query, args := builder().Select(
		"category",
		entsql.As(entsql.Sum("correct"), "correct_count"),
		entsql.As(entsql.Count("*"), "total"),
	).
		From(entsql.Table(tableAnswerEvents)).
		Where(entsql.EQ("attempt", 1)).
		GroupBy("category").
		OrderBy("category").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category accuracy: %w", err)
	}
	defer rows.Close()

	var stats []CategoryStat
	for rows.Next() {
		var st CategoryStat
		if err := rows.Scan(&st.Category, &st.Correct, &st.Total); err != nil {
			return nil, fmt.Errorf("scan category accuracy: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query category accuracy: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) LatestSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}
