package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
	tableSnapshots     = "snapshots"
)

// eventTable declares an event table. Every event carries a unique global
// sequence and a timestamp ahead of its own columns, and is indexed by
// timestamp and session.
func eventTable(name string, cols ...*schema.Column) *schema.Table {
	columns := append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
	}, cols...)
	return &schema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: []*schema.Column{columns[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{columns[2]}},
			{Name: name + "_session_id", Columns: []*schema.Column{columns[3]}},
		},
	}
}

var (
	sessionEventsTable = eventTable(tableSessionEvents,
		&schema.Column{Name: "kind", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "filter", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "questions_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)

	answerEventsTable = eventTable(tableAnswerEvents,
		&schema.Column{Name: "question_id", Type: field.TypeString},
		&schema.Column{Name: "category", Type: field.TypeString},
		&schema.Column{Name: "difficulty", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "attempt", Type: field.TypeInt, Default: 1},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	)

	snapshotColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	snapshotsTable = &schema.Table{
		Name:       tableSnapshots,
		Columns:    snapshotColumns,
		PrimaryKey: []*schema.Column{snapshotColumns[0]},
		Indexes: []*schema.Index{
			{Name: "snapshots_timestamp", Columns: []*schema.Column{snapshotColumns[2]}},
			{Name: "snapshots_sequence", Columns: []*schema.Column{snapshotColumns[1]}},
		},
	}

	tables = []*schema.Table{sessionEventsTable, answerEventsTable, snapshotsTable}
)
