package model

import (
	"errors"
	"net/mail"
	"time"
)

// Admin represents a login account. Every operation in the system requires
// an authenticated admin.
type Admin struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate returns the first violation found.
func (a *Admin) Validate() error {
	if len(a.Name) < 2 {
		return errors.New("Name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return errors.New("Invalid email address")
	}
	return nil
}

// ValidatePassword checks password requirements for new admin accounts.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return errors.New("Password must be at least 6 characters")
	}
	return nil
}
