// internal/domain/models/user.go
package models

import "time"

// User is a registered account. PasswordHash is always a bcrypt hash
// produced by the users store; it is never assigned from user input.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
