package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"assetdesk/internal/model"
)

// ErrUserNotFound is returned when an assignment references an unknown user.
var ErrUserNotFound = fmt.Errorf("user not found")

// ErrAssetNotFound is returned when an operation references an unknown asset.
var ErrAssetNotFound = fmt.Errorf("asset not found")

// AssetFilter narrows ListAssets results. Zero values mean "no filter".
type AssetFilter struct {
	Search     string
	Type       string
	Status     string
	Location   string
	Department string
}

const assetColumns = `a.id, a.name, a.type, a.location, a.brand, a.model, a.serial_number,
	        a.status, a.assigned_to, a.purchase_date, a.notes, a.department,
	        a.custom_properties, a.photo_mime, a.created_at, a.updated_at,
	        u.first_name, u.last_name`

// CreateAsset creates a new asset. When the input carries an assignee the
// stored status is forced to "assigned" regardless of the supplied status;
// this is the one place status is derived rather than trusted.
func CreateAsset(ctx context.Context, db *sql.DB, a *model.Asset) (*model.Asset, error) {
	status := a.Status
	if a.AssignedTo != nil {
		status = model.AssetStatusAssigned

		var exists int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, *a.AssignedTo).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("checking user: %w", err)
		}
	}

	props, err := json.Marshal(a.CustomProperties)
	if err != nil {
		return nil, fmt.Errorf("encoding custom properties: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO assets (name, type, location, brand, model, serial_number, status,
		                     assigned_to, purchase_date, notes, department, custom_properties)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Type, a.Location, a.Brand, a.Model, a.SerialNumber, status,
		a.AssignedTo, a.PurchaseDate, a.Notes, a.Department, string(props),
	)
	if err != nil {
		return nil, fmt.Errorf("creating asset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting asset id: %w", err)
	}

	return GetAsset(ctx, db, id)
}

// GetAsset returns an asset by ID with the assignee's name resolved. A
// dangling assignee reference is reported via AssignedToStale rather than
// silently dropped.
func GetAsset(ctx context.Context, db *sql.DB, id int64) (*model.Asset, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+assetColumns+`
		 FROM assets a
		 LEFT JOIN users u ON u.id = a.assigned_to
		 WHERE a.id = ?`, id,
	)

	a, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}
	return a, nil
}

// ListAssets returns assets matching the filter, newest first. Search matches
// name, serial number, brand, and model case-insensitively.
func ListAssets(ctx context.Context, db *sql.DB, f AssetFilter) ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + `
	          FROM assets a
	          LEFT JOIN users u ON u.id = a.assigned_to
	          WHERE 1=1`
	var args []any

	if f.Search != "" {
		query += ` AND (a.name LIKE '%'||?||'%' OR a.serial_number LIKE '%'||?||'%'
		           OR a.brand LIKE '%'||?||'%' OR a.model LIKE '%'||?||'%')`
		args = append(args, f.Search, f.Search, f.Search, f.Search)
	}
	if f.Type != "" && f.Type != "all" {
		query += ` AND a.type = ?`
		args = append(args, f.Type)
	}
	if f.Status != "" && f.Status != "all" {
		query += ` AND a.status = ?`
		args = append(args, f.Status)
	}
	if f.Location != "" && f.Location != "all" {
		query += ` AND a.location = ?`
		args = append(args, f.Location)
	}
	if f.Department != "" && f.Department != "all" {
		query += ` AND a.department = ?`
		args = append(args, f.Department)
	}

	query += ` ORDER BY a.created_at DESC, a.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// UpdateAsset updates an asset's fields. Assignment state is not touched
// here; use AssignAsset and UnassignAsset for that.
func UpdateAsset(ctx context.Context, db *sql.DB, id int64, a *model.Asset) error {
	props, err := json.Marshal(a.CustomProperties)
	if err != nil {
		return fmt.Errorf("encoding custom properties: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE assets SET name = ?, type = ?, location = ?, brand = ?, model = ?,
		        serial_number = ?, status = ?, purchase_date = ?, notes = ?,
		        department = ?, custom_properties = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		a.Name, a.Type, a.Location, a.Brand, a.Model, a.SerialNumber, a.Status,
		a.PurchaseDate, a.Notes, a.Department, string(props), id,
	)
	if err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// DeleteAsset removes an asset and its program inventory.
func DeleteAsset(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM asset_programs WHERE owner_kind = 'asset' AND asset_id = ?`, id); err != nil {
		return fmt.Errorf("deleting asset programs: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAssetNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing asset deletion: %w", err)
	}
	return nil
}

// AssignAsset assigns an asset to a user: sets the assignee and forces status
// to "assigned". The asset's prior status is not consulted, so an asset in
// maintenance can be reassigned directly; the target user must exist.
// Concurrent assignments are last-writer-wins.
func AssignAsset(ctx context.Context, db *sql.DB, assetID, userID int64) error {
	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("checking user: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE assets SET assigned_to = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		userID, model.AssetStatusAssigned, assetID,
	)
	if err != nil {
		return fmt.Errorf("assigning asset: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// UnassignAsset clears an asset's assignee and forces status back to
// "available". A prior non-assigned status (e.g. maintenance) is overwritten,
// not restored; the status history needed to restore it is not stored.
func UnassignAsset(ctx context.Context, db *sql.DB, assetID int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE assets SET assigned_to = NULL, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		model.AssetStatusAvailable, assetID,
	)
	if err != nil {
		return fmt.Errorf("unassigning asset: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// SetAssetAvailable is the second observed entry point for unassignment and
// is equivalent to UnassignAsset.
func SetAssetAvailable(ctx context.Context, db *sql.DB, assetID int64) error {
	return UnassignAsset(ctx, db, assetID)
}

// AssetDepartments returns the distinct non-empty departments across assets.
func AssetDepartments(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT department FROM assets WHERE department != '' ORDER BY department`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing asset departments: %w", err)
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// SetAssetPhoto stores an asset's photo.
func SetAssetPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE assets SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting asset photo: %w", err)
	}
	return nil
}

// GetAssetPhoto returns an asset's photo data and MIME type.
func GetAssetPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM assets WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting asset photo: %w", err)
	}
	return photo, mime.String, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(row scanner) (*model.Asset, error) {
	a := &model.Asset{}
	var assignedTo sql.NullInt64
	var photoMime, firstName, lastName sql.NullString
	var props string

	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.Location, &a.Brand, &a.Model, &a.SerialNumber,
		&a.Status, &assignedTo, &a.PurchaseDate, &a.Notes, &a.Department,
		&props, &photoMime, &a.CreatedAt, &a.UpdatedAt,
		&firstName, &lastName)
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		a.AssignedTo = &assignedTo.Int64
		if firstName.Valid {
			a.AssignedToName = firstName.String + " " + lastName.String
		} else {
			a.AssignedToStale = true
		}
	}
	a.PhotoMime = photoMime.String

	if err := json.Unmarshal([]byte(props), &a.CustomProperties); err != nil {
		return nil, fmt.Errorf("decoding custom properties: %w", err)
	}
	if a.CustomProperties == nil {
		a.CustomProperties = []model.CustomProperty{}
	}
	return a, nil
}
