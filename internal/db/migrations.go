package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: enforce per-asset program name uniqueness at the index
	// level. Earlier databases relied on the application-side check alone.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_asset_programs_asset_name
	     ON asset_programs(owner_kind, asset_id, name_key)`,
	// Migration 2: speed up the reverse lookup from users to their assets.
	`CREATE INDEX IF NOT EXISTS idx_assets_assigned_to ON assets(assigned_to)`,
}

// Migrate ensures the schema exists and runs the migration list.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
