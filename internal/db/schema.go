package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS admins (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
    id          INTEGER PRIMARY KEY,
    first_name  TEXT NOT NULL,
    last_name   TEXT NOT NULL,
    email       TEXT NOT NULL UNIQUE,
    department  TEXT NOT NULL DEFAULT '',
    position    TEXT NOT NULL DEFAULT '',
    phone       TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
    location    TEXT NOT NULL DEFAULT '',
    employee_id TEXT NOT NULL DEFAULT '',
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS assets (
    id                INTEGER PRIMARY KEY,
    name              TEXT NOT NULL,
    type              TEXT NOT NULL CHECK (type IN
        ('Desktop', 'Laptop', 'Monitor', 'Keyboard', 'Phone', 'Printer', 'Tablet', 'Server', 'Other')),
    location          TEXT NOT NULL CHECK (location IN ('SSF', 'MP', 'LA', 'Home')),
    brand             TEXT NOT NULL DEFAULT '',
    model             TEXT NOT NULL DEFAULT '',
    serial_number     TEXT NOT NULL DEFAULT '',
    status            TEXT NOT NULL DEFAULT 'available' CHECK (status IN
        ('available', 'assigned', 'maintenance', 'retired', 'GeneralUse')),
    assigned_to       INTEGER REFERENCES users(id),
    purchase_date     TEXT NOT NULL DEFAULT '',
    notes             TEXT NOT NULL DEFAULT '',
    department        TEXT NOT NULL DEFAULT '',
    custom_properties TEXT NOT NULL DEFAULT '[]',
    photo             BLOB,
    photo_mime        TEXT,
    created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_assets_assigned_to ON assets(assigned_to);

CREATE TABLE IF NOT EXISTS servers (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    ip_address    TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT '',
    environment   TEXT NOT NULL DEFAULT 'Production' CHECK (environment IN
        ('Production', 'Staging', 'Development', 'Lab')),
    status        TEXT NOT NULL DEFAULT 'online' CHECK (status IN
        ('online', 'maintenance', 'offline', 'decommissioned')),
    os            TEXT NOT NULL DEFAULT '',
    location      TEXT NOT NULL DEFAULT '',
    owner         TEXT NOT NULL DEFAULT '',
    notes         TEXT NOT NULL DEFAULT '',
    serial_number TEXT NOT NULL DEFAULT '',
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS asset_programs (
    id         INTEGER PRIMARY KEY,
    owner_kind TEXT NOT NULL DEFAULT 'asset' CHECK (owner_kind IN ('asset', 'server')),
    asset_id   INTEGER NOT NULL,
    name       TEXT NOT NULL,
    name_key   TEXT NOT NULL,
    version    TEXT NOT NULL DEFAULT '',
    vendor     TEXT NOT NULL DEFAULT '',
    logo_url   TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_asset_programs_asset_name
    ON asset_programs(owner_kind, asset_id, name_key);

CREATE TABLE IF NOT EXISTS tasks (
    id              INTEGER PRIMARY KEY,
    title           TEXT NOT NULL,
    completed       INTEGER NOT NULL DEFAULT 0,
    created_by      INTEGER NOT NULL,
    created_by_name TEXT NOT NULL,
    created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    revoked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
