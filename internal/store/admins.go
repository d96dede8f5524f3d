package store

import (
	"context"
	"database/sql"
	"fmt"

	"assetdesk/internal/model"
)

// ErrDuplicateAdminEmail is returned when registering an admin with an email
// that is already taken.
var ErrDuplicateAdminEmail = fmt.Errorf("an account with this email already exists")

// CreateAdmin creates a new admin account with a pre-hashed password.
func CreateAdmin(ctx context.Context, db *sql.DB, name, email, passwordHash string) (*model.Admin, error) {
	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM admins WHERE email = ?`, email).Scan(&exists)
	if err == nil {
		return nil, ErrDuplicateAdminEmail
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking admin email: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO admins (name, email, password_hash) VALUES (?, ?, ?)`,
		name, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin id: %w", err)
	}

	return GetAdmin(ctx, db, id)
}

// GetAdmin returns an admin by ID.
func GetAdmin(ctx context.Context, db *sql.DB, id int64) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM admins WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin: %w", err)
	}
	return a, nil
}

// GetAdminByEmail returns an admin by email.
func GetAdminByEmail(ctx context.Context, db *sql.DB, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM admins WHERE email = ?`, email,
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin by email: %w", err)
	}
	return a, nil
}

// CountAdmins returns the number of admin accounts.
func CountAdmins(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return count, nil
}
