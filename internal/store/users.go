package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/tally/internal/model"
)

// CreateUser inserts a user. A taken username yields ErrDuplicateUsername and
// leaves the existing row untouched.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (model.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		username, passwordHash)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.User{}, fmt.Errorf("creating user: %w", err)
	}
	if n == 0 {
		return model.User{}, ErrDuplicateUsername
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading user id: %w", err)
	}
	return model.User{ID: id, Username: username, PasswordHash: passwordHash}, nil
}

// FindUser returns the user matching both username and password hash.
func (s *Store) FindUser(ctx context.Context, username, passwordHash string) (model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users
		 WHERE username = ? AND password_hash = ?`,
		username, passwordHash))
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(ctx context.Context, id int64) (model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE id = ?", id))
}

func (s *Store) scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("reading user: %w", err)
	}
	return u, nil
}
