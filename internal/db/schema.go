package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS medicines (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    baris        TEXT,
    rak          TEXT,
    tingkat      TEXT,
    petak        TEXT,
    last_updated DATETIME
);

CREATE TABLE IF NOT EXISTS location_options (
    id         INTEGER PRIMARY KEY,
    category   TEXT NOT NULL CHECK (category IN ('baris', 'rak', 'tingkat', 'petak')),
    value      TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (category, value)
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
