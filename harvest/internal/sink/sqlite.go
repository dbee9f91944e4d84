package sink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hazyhaar/revq/dbopen"
	"github.com/hazyhaar/revq/review"
)

// Schema defines the run-history tables. Each harvest run gets one row
// in runs and one row per extracted review in reviews. Re-running
// against the same profile appends a new run rather than replacing the
// old one, so extraction quality can be compared over time.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    profile_url TEXT NOT NULL,
    source      TEXT NOT NULL,
    strategy    TEXT NOT NULL DEFAULT '',
    fetched_at  TEXT NOT NULL,
    count       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile_url);

CREATE TABLE IF NOT EXISTS reviews (
    run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    reviewer TEXT NOT NULL,
    rating   REAL NOT NULL,
    text     TEXT NOT NULL,
    PRIMARY KEY (run_id, position)
);
`

// SQLite persists run history to a local database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the run-history database at path.
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sink: sqlite sink requires a path")
	}
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, fmt.Errorf("sink: open run history: %w", err)
	}
	return &SQLite{db: db}, nil
}

// NewSQLiteDB wraps an already-open database. Used by tests.
func NewSQLiteDB(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Send(ctx context.Context, res *review.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sink: begin run insert: %w", err)
	}
	defer tx.Rollback()

	// UUIDv7 run IDs sort by creation time, so run history reads in order.
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("sink: run id: %w", err)
	}
	runID := id.String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, profile_url, source, strategy, fetched_at, count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, res.ProfileURL, res.Source, res.Strategy,
		res.FetchedAt.UTC().Format("2006-01-02T15:04:05Z07:00"), res.Count)
	if err != nil {
		return fmt.Errorf("sink: insert run: %w", err)
	}
	for i, rv := range res.Reviews {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO reviews (run_id, position, reviewer, rating, text)
			 VALUES (?, ?, ?, ?, ?)`,
			runID, i, rv.Reviewer, rv.Rating, rv.Text)
		if err != nil {
			return fmt.Errorf("sink: insert review %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sink: commit run: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
