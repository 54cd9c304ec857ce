package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/opmc/inventory/internal/model"
)

// CreateLocationOption inserts a new option. A duplicate (category, value)
// pair returns an error wrapping model.ErrDuplicateOption.
func CreateLocationOption(ctx context.Context, db *sql.DB, category model.Category, value string) (*model.LocationOption, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO location_options (category, value) VALUES (?, ?)`,
		string(category), value,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("creating location option %s=%q: %w", category, value, model.ErrDuplicateOption)
		}
		return nil, fmt.Errorf("creating location option: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting location option id: %w", err)
	}

	return GetLocationOption(ctx, db, id)
}

// GetLocationOption returns an option by ID, or nil if it does not exist.
func GetLocationOption(ctx context.Context, db *sql.DB, id int64) (*model.LocationOption, error) {
	o := &model.LocationOption{}
	var category string
	err := db.QueryRowContext(ctx,
		`SELECT id, category, value, created_at FROM location_options WHERE id = ?`, id,
	).Scan(&o.ID, &category, &o.Value, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting location option: %w", err)
	}
	o.Category = model.Category(category)
	return o, nil
}

// ListLocationOptions returns every option ordered by value.
func ListLocationOptions(ctx context.Context, db *sql.DB) ([]model.LocationOption, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, category, value, created_at FROM location_options ORDER BY value ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing location options: %w", err)
	}
	defer rows.Close()

	var opts []model.LocationOption
	for rows.Next() {
		var o model.LocationOption
		var category string
		if err := rows.Scan(&o.ID, &category, &o.Value, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning location option: %w", err)
		}
		o.Category = model.Category(category)
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// DeleteLocationOption removes an option by ID.
func DeleteLocationOption(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM location_options WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting location option: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
