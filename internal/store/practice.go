package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var sessionColumns = []string{
	"id", "sequence", "timestamp", "username", "grade",
	"correct", "text", "attempt", "target_word",
}

// sessionRepo implements SessionRepo backed by the global sequence counter.
type sessionRepo struct {
	x   *sqlx.DB
	seq *sequenceCounter
}

func (r *sessionRepo) Append(ctx context.Context, rec *PracticeSession) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	rec.Sequence = seqNum
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	query, args := builder().Insert(tableSessions).
		Columns(sessionColumns...).
		Values(rec.ID, rec.Sequence, rec.Timestamp, rec.Username, rec.Grade,
			rec.Correct, rec.Text, rec.Attempt, rec.TargetWord).
		Query()
	if _, err := r.x.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice session: %w", err)
	}
	return nil
}

func (r *sessionRepo) List(ctx context.Context, username string, limit int) ([]PracticeSession, error) {
	sel := builder().Select(sessionColumns...).
		From(entsql.Table(tableSessions)).
		Where(entsql.EQ("username", username)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var out []PracticeSession
	if err := r.x.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list practice sessions for %q: %w", username, err)
	}
	return out, nil
}

func (r *sessionRepo) DeleteAll(ctx context.Context, username string) (int64, error) {
	query, args := builder().Delete(tableSessions).
		Where(entsql.EQ("username", username)).
		Query()
	res, err := r.x.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear practice sessions for %q: %w", username, err)
	}
	return res.RowsAffected()
}
