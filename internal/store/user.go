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

var userColumns = []string{"id", "username", "email", "created_at"}

// userRepo implements UserRepo.
type userRepo struct {
	x *sqlx.DB
}

func (r *userRepo) Create(ctx context.Context, u *User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	query, args := builder().Insert(tableUsers).
		Columns("username", "email", "created_at").
		Values(u.Username, u.Email, u.CreatedAt).
		Query()
	res, err := r.x.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = int(id)
	return nil
}

func (r *userRepo) Get(ctx context.Context, username string) (*User, error) {
	query, args := builder().Select(userColumns...).
		From(entsql.Table(tableUsers)).
		Where(entsql.EQ("username", username)).
		Limit(1).
		Query()
	var u User
	if err := r.x.GetContext(ctx, &u, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}

func (r *userRepo) List(ctx context.Context) ([]User, error) {
	query, args := builder().Select(userColumns...).
		From(entsql.Table(tableUsers)).
		OrderBy("username").
		Query()
	var users []User
	if err := r.x.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
