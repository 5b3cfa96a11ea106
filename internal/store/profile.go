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
	"github.com/abhisek/aidojo/internal/patterns"
)

// ProfileRepo persists the single user profile as a whole-object blob.
type ProfileRepo interface {
	// Load returns the stored profile, or nil if none exists. An
	// unreadable profile is discarded and reported as absent.
	Load(ctx context.Context) (*Profile, error)

	// Save upserts the profile, stamping UpdatedAt.
	Save(ctx context.Context, p *Profile) error
}

type profileRepo struct {
	db *sql.DB
}

func (r *profileRepo) Load(ctx context.Context) (*Profile, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		fmt.Fprintf(os.Stderr, "warning: discarding unreadable profile: %v\n", err)
		if _, delErr := r.db.ExecContext(ctx, `DELETE FROM profile WHERE id = 1`); delErr != nil {
			return nil, fmt.Errorf("clear corrupted profile: %w", delErr)
		}
		return nil, nil
	}

	// Maps inside the blob may be null after a round trip.
	if p.Patterns == nil {
		p.Patterns = make(patterns.Stats)
	}
	if p.Completed == nil {
		p.Completed = make(map[string]depth.Level)
	}
	return &p, nil
}

func (r *profileRepo) Save(ctx context.Context, p *Profile) error {
	p.Version = SchemaVersion
	p.UpdatedAt = time.Now().UTC()

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profile (id, data) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
