package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/aidojo/internal/depth"
	"github.com/abhisek/aidojo/internal/lessons"
)

// ProgressRepo persists lesson progress as whole-record JSON blobs keyed
// by lesson id. Callers supply the full snapshot on every save.
type ProgressRepo interface {
	// Save upserts a progress snapshot. The original StartedAt of an
	// existing record is preserved across saves.
	Save(ctx context.Context, p *LessonProgress) error

	// Load returns the stored progress, or nil if none exists. A record
	// that cannot be decoded is discarded and reported as absent.
	Load(ctx context.Context, lessonID string) (*LessonProgress, error)

	// Clear deletes the stored progress for the lesson.
	Clear(ctx context.Context, lessonID string) error

	// Complete marks the record completed with the achieved depth and a
	// completion timestamp. Unlike Clear, the record is kept.
	Complete(ctx context.Context, lessonID string, level depth.Level, now time.Time) error

	// FindInProgress returns the id of any stored lesson whose phase is
	// not completed, or "" if there is none.
	FindInProgress(ctx context.Context) (string, error)
}

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Save(ctx context.Context, p *LessonProgress) error {
	existing, err := r.Load(ctx, p.LessonID)
	if err != nil {
		return err
	}
	if existing != nil {
		p.StartedAt = existing.StartedAt
	}
	p.Version = SchemaVersion

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO lesson_progress (lesson_id, phase, data, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(lesson_id) DO UPDATE SET
		   phase = excluded.phase,
		   data = excluded.data,
		   updated_at = excluded.updated_at`,
		p.LessonID, string(p.Phase), string(raw), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Load(ctx context.Context, lessonID string) (*LessonProgress, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM lesson_progress WHERE lesson_id = ?`, lessonID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var p LessonProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// Corrupted record: discard it and start fresh rather than
		// wedging the session on unreadable state.
		fmt.Fprintf(os.Stderr, "warning: discarding unreadable progress for %q: %v\n", lessonID, err)
		if clearErr := r.Clear(ctx, lessonID); clearErr != nil {
			return nil, fmt.Errorf("clear corrupted progress: %w", clearErr)
		}
		return nil, nil
	}
	return &p, nil
}

func (r *progressRepo) Clear(ctx context.Context, lessonID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM lesson_progress WHERE lesson_id = ?`, lessonID)
	if err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Complete(ctx context.Context, lessonID string, level depth.Level, now time.Time) error {
	p, err := r.Load(ctx, lessonID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("complete progress: no record for %q", lessonID)
	}

	p.Phase = lessons.PhaseCompleted
	completedAt := now
	p.CompletedAt = &completedAt
	p.Depth = level

	return r.Save(ctx, p)
}

func (r *progressRepo) FindInProgress(ctx context.Context) (string, error) {
	var lessonID string
	err := r.db.QueryRowContext(ctx,
		`SELECT lesson_id FROM lesson_progress WHERE phase != ? ORDER BY updated_at DESC LIMIT 1`,
		string(lessons.PhaseCompleted),
	).Scan(&lessonID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find in-progress lesson: %w", err)
	}
	return lessonID, nil
}
