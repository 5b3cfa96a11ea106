package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// Event kinds recorded by the practice engine. The event log is
// append-only diagnostics; nothing replays it into state.
const (
	EventLessonStarted  = "lesson_started"
	EventPhaseAdvanced  = "phase_advanced"
	EventLessonRestart  = "lesson_restarted"
	EventLessonDone     = "lesson_completed"
	EventTokenAwarded   = "token_awarded"
	EventReplyDiscarded = "reply_discarded"
)

// EventData is the payload for one appended event.
type EventData struct {
	Kind     string
	LessonID string
	Detail   string
}

// EventRecord is one stored event.
type EventRecord struct {
	ID        int
	Sequence  int64
	Kind      string
	LessonID  string
	Detail    string
	Timestamp time.Time
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// Append records an event with the next global sequence number.
	Append(ctx context.Context, data EventData) error

	// Counts returns the number of stored events per kind.
	Counts(ctx context.Context) (map[string]int, error)

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]EventRecord, error)
}

// sequenceCounter assigns a single increasing sequence to every event so
// ordering survives even if event kinds ever split into separate tables.
// Raw SQL with RETURNING keeps the increment atomic at the database
// level; the mutex serializes within the process.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) Append(ctx context.Context, data EventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (sequence, kind, lesson_id, detail, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		seqNum, data.Kind, data.LessonID, data.Detail,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (r *eventRepo) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

func (r *eventRepo) Recent(ctx context.Context, limit int) ([]EventRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, kind, lesson_id, detail, timestamp
		 FROM events ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var rec EventRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Kind, &rec.LessonID, &rec.Detail, &ts); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
			rec.Timestamp = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
