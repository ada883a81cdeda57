// Package eventlog appends session lifecycle events to an append-only
// table, mainly for offline sync and audit tooling.
package eventlog

import (
	"context"
	"database/sql"
	"time"
)

const (
	TypeSessionStarted   = "session_started"
	TypeAnswerSubmitted  = "answer_submitted"
	TypeSessionCompleted = "session_completed"
)

type Event struct {
	Seq       int64
	Type      string
	Key       string // natural key: session id
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}

// List returns events after the given sequence number, oldest first.
func (r *Repo) List(ctx context.Context, afterSeq int64, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, typ, key, data, created_at FROM event_log
		 WHERE seq > $1 ORDER BY seq ASC LIMIT $2`,
		afterSeq, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
