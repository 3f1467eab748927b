package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

var mistakeColumns = []string{
	"id", "username", "word", "user_spelling", "original_sentence",
	"grade", "mastery_score", "timestamp", "created_seq",
}

// mistakeRepo implements MistakeRepo.
type mistakeRepo struct {
	x   *sqlx.DB
	seq *sequenceCounter
}

func (r *mistakeRepo) List(ctx context.Context, username string) ([]Mistake, error) {
	query, args := builder().Select(mistakeColumns...).
		From(entsql.Table(tableMistakes)).
		Where(entsql.EQ("username", username)).
		OrderBy(entsql.Desc("created_seq")).
		Query()
	var out []Mistake
	if err := r.x.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list mistakes for %q: %w", username, err)
	}
	return out, nil
}

func (r *mistakeRepo) Get(ctx context.Context, id string) (*Mistake, error) {
	query, args := builder().Select(mistakeColumns...).
		From(entsql.Table(tableMistakes)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()
	var m Mistake
	if err := r.x.GetContext(ctx, &m, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get mistake %s: %w", id, err)
	}
	return &m, nil
}

// Save inserts the row, or on an id conflict overwrites the mutable columns.
// created_seq is immutable so the glossary keeps its original order.
func (r *mistakeRepo) Save(ctx context.Context, m *Mistake) error {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if m.CreatedSeq == 0 {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		m.CreatedSeq = seq
	}

	query, args := builder().Insert(tableMistakes).
		Columns(mistakeColumns...).
		Values(m.ID, m.Username, m.Word, m.UserSpelling, m.OriginalSentence,
			m.Grade, m.MasteryScore, m.Timestamp, m.CreatedSeq).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("user_spelling")
				u.SetExcluded("original_sentence")
				u.SetExcluded("grade")
				u.SetExcluded("mastery_score")
				u.SetExcluded("timestamp")
			}),
		).
		Query()
	if _, err := r.x.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save mistake %q: %w", m.Word, err)
	}
	return nil
}

func (r *mistakeRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(tableMistakes).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := r.x.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete mistake %s: %w", id, err)
	}
	return nil
}

func (r *mistakeRepo) DeleteAll(ctx context.Context, username string) (int64, error) {
	query, args := builder().Delete(tableMistakes).
		Where(entsql.EQ("username", username)).
		Query()
	res, err := r.x.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear mistakes for %q: %w", username, err)
	}
	return res.RowsAffected()
}
