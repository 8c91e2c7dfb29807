// Package userstore is the credential store: the users table plus the
// bcrypt hashing that guards it.
package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/accidentdash/internal/app/system/normalize"
	"github.com/dalemusser/accidentdash/internal/domain/models"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password hashes.
const BcryptCost = 12

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches a lookup.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput is returned when a required field is blank.
	ErrInvalidInput = errors.New("name, email and password are required")
)

type Store struct {
	db   *sqlx.DB
	cost int
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, cost: BcryptCost}
}

// WithCost returns a copy of the store that hashes with the given bcrypt
// cost. Tests use bcrypt.MinCost to stay fast.
func (s *Store) WithCost(cost int) *Store {
	return &Store{db: s.db, cost: cost}
}

// Create hashes the password with a fresh salt and inserts a new user.
// The plaintext password is not retained anywhere.
func (s *Store) Create(ctx context.Context, name, email, password string) (models.User, error) {
	u := models.User{
		Name:  normalize.Name(name),
		Email: normalize.Email(email),
	}
	if u.Name == "" || u.Email == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return u, nil
}

// GetByEmail looks up a user by normalized email. Returns ErrNotFound if absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`,
		normalize.Email(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Count returns the number of registered users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, err
	}
	return n, nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// VerifyPassword reports whether password matches the stored hash.
// A nil user never verifies.
func VerifyPassword(u *models.User, password string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
