package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/yourusername/print-order-board/internal/pkg/logger"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

const schema = `
CREATE TABLE IF NOT EXISTS job_events (
	id         BIGSERIAL PRIMARY KEY,
	job_id     TEXT NOT NULL,
	event      TEXT NOT NULL,
	actor      TEXT NOT NULL DEFAULT '',
	detail     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS job_events_job_id_idx ON job_events (job_id);
`

// PostgresTrail persists order events to a job_events table. The sheet
// stays the source of truth for current state; this is the append-only
// history the sheet cannot keep.
type PostgresTrail struct {
	db  *sql.DB
	log *logger.Logger
}

// New connects with a bounded retry (the database container may still be
// starting) and ensures the schema.
func New(dsn string, log *logger.Logger) (*PostgresTrail, error) {
	db, err := openWithRetry(dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit schema: %w", err)
	}
	return &PostgresTrail{db: db, log: log}, nil
}

// Record inserts one event. Failures are logged and swallowed: the audit
// trail must never fail an order operation.
func (t *PostgresTrail) Record(ctx context.Context, jobID, event, actor, detail string) {
	_, err := t.db.ExecContext(ctx,
		`INSERT INTO job_events (job_id, event, actor, detail) VALUES ($1, $2, $3, $4)`,
		jobID, event, actor, detail)
	if err != nil {
		t.log.Warn("audit record failed", "job_id", jobID, "event", event, "err", err)
	}
}

// History returns a job's events oldest first.
func (t *PostgresTrail) History(ctx context.Context, jobID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := t.db.QueryContext(ctx,
		`SELECT job_id, event, actor, detail, created_at
		 FROM job_events WHERE job_id = $1 ORDER BY id ASC LIMIT $2`,
		jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.JobID, &e.Event, &e.Actor, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (t *PostgresTrail) Close() error { return t.db.Close() }

// Event is one recorded order event.
type Event struct {
	JobID     string
	Event     string
	Actor     string
	Detail    string
	CreatedAt time.Time
}

func openWithRetry(dsn string) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if pingErr := db.Ping(); pingErr == nil {
				return db, nil
			} else {
				err = pingErr
			}
		}
		if db != nil {
			_ = db.Close()
		}
		lastErr = err
		if attempt < connectAttempts {
			time.Sleep(connectDelay)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("postgres connection failed")
	}
	return nil, lastErr
}
