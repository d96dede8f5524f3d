package store

import (
	"context"
	"database/sql"
	"fmt"

	"assetdesk/internal/model"
)

// ErrDuplicateProgram is returned when a program with the same normalized
// name already exists on the target asset or server.
var ErrDuplicateProgram = fmt.Errorf("this program is already listed for the asset")

// ListPrograms returns the program inventory for an asset or server,
// sorted by name.
func ListPrograms(ctx context.Context, db *sql.DB, ownerKind string, assetID int64) ([]model.Program, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, owner_kind, asset_id, name, version, vendor, logo_url, created_at, updated_at
		 FROM asset_programs
		 WHERE owner_kind = ? AND asset_id = ?
		 ORDER BY name`, ownerKind, assetID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var programs []model.Program
	for rows.Next() {
		var p model.Program
		if err := rows.Scan(&p.ID, &p.OwnerKind, &p.AssetID, &p.Name, &p.Version, &p.Vendor,
			&p.LogoURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning program: %w", err)
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

// AddProgram adds a program to an asset's or server's inventory. Names are
// compared trimmed and lowercased; adding a duplicate on the same owner is
// rejected. When no logo URL is supplied one is derived from the vendor
// domain, falling back to an icon-service slug.
func AddProgram(ctx context.Context, db *sql.DB, p *model.Program) (*model.Program, error) {
	key := model.ProgramNameKey(p.Name)

	var exists int
	err := db.QueryRowContext(ctx,
		`SELECT 1 FROM asset_programs WHERE owner_kind = ? AND asset_id = ? AND name_key = ?`,
		p.OwnerKind, p.AssetID, key,
	).Scan(&exists)
	if err == nil {
		return nil, ErrDuplicateProgram
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking program: %w", err)
	}

	logoURL := p.LogoURL
	if logoURL == "" {
		logoURL = p.GuessLogoURL()
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO asset_programs (owner_kind, asset_id, name, name_key, version, vendor, logo_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.OwnerKind, p.AssetID, p.Name, key, p.Version, p.Vendor, logoURL,
	)
	if err != nil {
		return nil, fmt.Errorf("adding program: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting program id: %w", err)
	}

	return GetProgram(ctx, db, id)
}

// GetProgram returns a program by ID.
func GetProgram(ctx context.Context, db *sql.DB, id int64) (*model.Program, error) {
	p := &model.Program{}
	err := db.QueryRowContext(ctx,
		`SELECT id, owner_kind, asset_id, name, version, vendor, logo_url, created_at, updated_at
		 FROM asset_programs WHERE id = ?`, id,
	).Scan(&p.ID, &p.OwnerKind, &p.AssetID, &p.Name, &p.Version, &p.Vendor,
		&p.LogoURL, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting program: %w", err)
	}
	return p, nil
}

// RemoveProgram removes a program from an asset's or server's inventory.
// The owner id must match, so a stale page cannot delete another owner's entry.
func RemoveProgram(ctx context.Context, db *sql.DB, ownerKind string, assetID, programID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM asset_programs WHERE id = ? AND owner_kind = ? AND asset_id = ?`,
		programID, ownerKind, assetID,
	)
	if err != nil {
		return fmt.Errorf("removing program: %w", err)
	}
	return nil
}
