package model

import (
	"errors"
	"net/mail"
	"time"
)

// User represents an employee record. Users do not log in; admins do.
type User struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Status     string    `json:"status"`
	Location   string    `json:"location,omitempty"`
	EmployeeID string    `json:"employee_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Derived at read time: assets whose assignee is this user.
	AssignedAssets []AssetRef `json:"assigned_assets,omitempty"`
}

// AssetRef is a minimal asset reference for per-user asset lists.
type AssetRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// User statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Validate applies defaults and returns the first violation found.
func (u *User) Validate() error {
	if u.FirstName == "" {
		return errors.New("First name is required")
	}
	if u.LastName == "" {
		return errors.New("Last name is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("Invalid email address")
	}
	if u.Department == "" {
		return errors.New("Department is required")
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
	if u.Status != UserStatusActive && u.Status != UserStatusInactive {
		return errors.New("Invalid status")
	}
	return nil
}
