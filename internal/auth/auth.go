// Package auth provides user signup and login backed by a Postgres user
// store. Passwords are hashed with bcrypt and never leave the package;
// callers only ever see the public User fields.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailInUse is returned by Signup when the email is already registered.
	ErrEmailInUse = errors.New("email already in use")

	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned by Store implementations when no user
	// matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Store persists user accounts.
type Store interface {
	// CreateUser inserts a new user and returns it. Returns ErrEmailInUse
	// if the email is already registered.
	CreateUser(ctx context.Context, name, email, passwordHash string) (User, error)

	// GetUserByEmail returns the user and password hash for an email, or
	// ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (User, string, error)
}

// Service implements signup and login on top of a Store.
type Service struct {
	store Store
	cost  int
}

// NewService creates an auth service using the given bcrypt work factor.
func NewService(store Store, bcryptCost int) *Service {
	return &Service{store: store, cost: bcryptCost}
}

// Signup registers a new account. The email is normalized to lower case so
// lookups are case-insensitive.
func (s *Service) Signup(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return User{}, errors.New("name, email, and password are required")
	}

	if _, _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return User{}, ErrEmailInUse
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	// The store maps a unique-constraint violation to ErrEmailInUse, so a
	// concurrent signup racing past the lookup still fails cleanly.
	user, err := s.store.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return User{}, ErrEmailInUse
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates an email/password pair.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)

	user, hash, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
