package store

import (
	"context"
	"database/sql"
	"fmt"

	"assetdesk/internal/model"
)

// ErrDuplicateEmail is returned when a user create/update collides with an
// existing user's email.
var ErrDuplicateEmail = fmt.Errorf("a user with this email already exists")

// UserFilter narrows ListUsers results. Zero values mean "no filter".
type UserFilter struct {
	Search     string
	Department string
	Status     string
	Location   string
}

// CreateUser creates a new employee record. Emails are unique as stored.
func CreateUser(ctx context.Context, db *sql.DB, u *model.User) (*model.User, error) {
	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, u.Email).Scan(&exists)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, department, position, phone, status, location, employee_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.FirstName, u.LastName, u.Email, u.Department, u.Position, u.Phone, u.Status, u.Location, u.EmployeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID together with the assets assigned to them.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, department, position, phone,
		        status, location, employee_id, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Department, &u.Position, &u.Phone,
		&u.Status, &u.Location, &u.EmployeeID, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	assets, err := userAssets(ctx, db, id)
	if err != nil {
		return nil, err
	}
	u.AssignedAssets = assets
	return u, nil
}

// ListUsers returns users matching the filter, newest first, each carrying
// its assigned-asset references. Search matches first name, last name, and
// email case-insensitively.
func ListUsers(ctx context.Context, db *sql.DB, f UserFilter) ([]model.User, error) {
	query := `SELECT id, first_name, last_name, email, department, position, phone,
	                 status, location, employee_id, created_at, updated_at
	          FROM users WHERE 1=1`
	var args []any

	if f.Search != "" {
		query += ` AND (first_name LIKE '%'||?||'%' OR last_name LIKE '%'||?||'%'
		           OR email LIKE '%'||?||'%')`
		args = append(args, f.Search, f.Search, f.Search)
	}
	if f.Department != "" && f.Department != "all" {
		query += ` AND department = ?`
		args = append(args, f.Department)
	}
	if f.Status != "" && f.Status != "all" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.Location != "" && f.Location != "all" {
		query += ` AND location = ?`
		args = append(args, f.Location)
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Department, &u.Position,
			&u.Phone, &u.Status, &u.Location, &u.EmployeeID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		assets, err := userAssets(ctx, db, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].AssignedAssets = assets
	}
	return users, nil
}

// UpdateUser updates an employee record. The email uniqueness check excludes
// the user being updated.
func UpdateUser(ctx context.Context, db *sql.DB, id int64, u *model.User) error {
	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE email = ? AND id != ?`, u.Email, id,
	).Scan(&exists)
	if err == nil {
		return ErrDuplicateEmail
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking email: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ?, department = ?,
		        position = ?, phone = ?, status = ?, location = ?, employee_id = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.FirstName, u.LastName, u.Email, u.Department, u.Position, u.Phone,
		u.Status, u.Location, u.EmployeeID, id,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// DeleteUser removes a user. Every asset assigned to the user is reset to
// available with no assignee first; both steps run in one transaction so no
// asset can end up referencing a deleted user.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE assets SET assigned_to = NULL, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE assigned_to = ?`,
		model.AssetStatusAvailable, id,
	)
	if err != nil {
		return fmt.Errorf("unassigning user assets: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing user deletion: %w", err)
	}
	return nil
}

// UpsertUserByEmail inserts or updates a user keyed by email. Used by the
// CSV import; the email is expected to be lowercased by the caller.
func UpsertUserByEmail(ctx context.Context, db *sql.DB, u *model.User) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, department, position, phone, status, location, employee_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (email) DO UPDATE SET
		     first_name = excluded.first_name,
		     last_name = excluded.last_name,
		     department = excluded.department,
		     status = excluded.status,
		     location = excluded.location,
		     updated_at = CURRENT_TIMESTAMP`,
		u.FirstName, u.LastName, u.Email, u.Department, u.Position, u.Phone, u.Status, u.Location, u.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

// UserDepartments returns the distinct non-empty departments across users.
func UserDepartments(ctx context.Context, db *sql.DB) ([]string, error) {
	return distinctUserColumn(ctx, db, "department")
}

// UserLocations returns the distinct non-empty locations across users.
func UserLocations(ctx context.Context, db *sql.DB) ([]string, error) {
	return distinctUserColumn(ctx, db, "location")
}

func distinctUserColumn(ctx context.Context, db *sql.DB, column string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM users WHERE `+column+` != '' ORDER BY `+column,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user %ss: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func userAssets(ctx context.Context, db *sql.DB, userID int64) ([]model.AssetRef, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name FROM assets WHERE assigned_to = ? ORDER BY name`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("getting user assets: %w", err)
	}
	defer rows.Close()

	var refs []model.AssetRef
	for rows.Next() {
		var ref model.AssetRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scanning asset reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
