package store

import (
	"context"
	"database/sql"
	"fmt"

	"assetdesk/internal/model"
)

// ErrServerNotFound is returned when an operation references an unknown server.
var ErrServerNotFound = fmt.Errorf("server not found")

// ServerFilter narrows ListServers results. Zero values mean "no filter".
type ServerFilter struct {
	Search      string
	Environment string
	Status      string
	Location    string
}

// CreateServer creates a new server record.
func CreateServer(ctx context.Context, db *sql.DB, s *model.Server) (*model.Server, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO servers (name, ip_address, role, environment, status, os, location, owner, notes, serial_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.IPAddress, s.Role, s.Environment, s.Status, s.OS, s.Location, s.Owner, s.Notes, s.SerialNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("creating server: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting server id: %w", err)
	}

	return GetServer(ctx, db, id)
}

// GetServer returns a server by ID.
func GetServer(ctx context.Context, db *sql.DB, id int64) (*model.Server, error) {
	s := &model.Server{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, ip_address, role, environment, status, os, location, owner,
		        notes, serial_number, created_at, updated_at
		 FROM servers WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.IPAddress, &s.Role, &s.Environment, &s.Status, &s.OS,
		&s.Location, &s.Owner, &s.Notes, &s.SerialNumber, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting server: %w", err)
	}
	return s, nil
}

// ListServers returns servers matching the filter, newest first. Search
// matches name, IP address, role, OS, and owner case-insensitively.
func ListServers(ctx context.Context, db *sql.DB, f ServerFilter) ([]model.Server, error) {
	query := `SELECT id, name, ip_address, role, environment, status, os, location, owner,
	                 notes, serial_number, created_at, updated_at
	          FROM servers WHERE 1=1`
	var args []any

	if f.Search != "" {
		query += ` AND (name LIKE '%'||?||'%' OR ip_address LIKE '%'||?||'%'
		           OR role LIKE '%'||?||'%' OR os LIKE '%'||?||'%' OR owner LIKE '%'||?||'%')`
		args = append(args, f.Search, f.Search, f.Search, f.Search, f.Search)
	}
	if f.Environment != "" && f.Environment != "all" {
		query += ` AND environment = ?`
		args = append(args, f.Environment)
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
		return nil, fmt.Errorf("listing servers: %w", err)
	}
	defer rows.Close()

	var servers []model.Server
	for rows.Next() {
		var s model.Server
		if err := rows.Scan(&s.ID, &s.Name, &s.IPAddress, &s.Role, &s.Environment, &s.Status,
			&s.OS, &s.Location, &s.Owner, &s.Notes, &s.SerialNumber, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning server: %w", err)
		}
		servers = append(servers, s)
	}
	return servers, rows.Err()
}

// UpdateServer updates a server record.
func UpdateServer(ctx context.Context, db *sql.DB, id int64, s *model.Server) error {
	result, err := db.ExecContext(ctx,
		`UPDATE servers SET name = ?, ip_address = ?, role = ?, environment = ?, status = ?,
		        os = ?, location = ?, owner = ?, notes = ?, serial_number = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		s.Name, s.IPAddress, s.Role, s.Environment, s.Status, s.OS, s.Location,
		s.Owner, s.Notes, s.SerialNumber, id,
	)
	if err != nil {
		return fmt.Errorf("updating server: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrServerNotFound
	}
	return nil
}

// DeleteServer removes a server and its program inventory.
func DeleteServer(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM asset_programs WHERE owner_kind = 'server' AND asset_id = ?`, id); err != nil {
		return fmt.Errorf("deleting server programs: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM servers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting server: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrServerNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing server deletion: %w", err)
	}
	return nil
}
