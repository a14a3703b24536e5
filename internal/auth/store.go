package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// PGStore is the Postgres-backed user store.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id            UUID PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    email         TEXT NOT NULL,
//	    password_hash TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    CONSTRAINT users_email_unique UNIQUE (email)
//	);
type PGStore struct {
	db DBTX
}

// NewPGStore creates a user store backed by the given database handle.
func NewPGStore(db DBTX) *PGStore {
	return &PGStore{db: db}
}

// CreateUser inserts a new user row with a fresh UUID.
func (s *PGStore) CreateUser(ctx context.Context, name, email, passwordHash string) (User, error) {
	user := User{ID: uuid.New(), Name: name, Email: email}

	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Name, user.Email, passwordHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailInUse
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// GetUserByEmail looks up a user and password hash by email.
func (s *PGStore) GetUserByEmail(ctx context.Context, email string) (User, string, error) {
	var (
		user User
		hash string
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, "", ErrUserNotFound
		}
		return User{}, "", fmt.Errorf("select user: %w", err)
	}

	return user, hash, nil
}
