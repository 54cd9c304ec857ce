package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/opmc/inventory/internal/model"
)

const medicineColumns = `id, name, baris, rak, tingkat, petak, last_updated`

// CreateMedicine inserts a medicine without a location.
func CreateMedicine(ctx context.Context, db *sql.DB, name string) (*model.Medicine, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO medicines (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating medicine: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting medicine id: %w", err)
	}

	return GetMedicine(ctx, db, id)
}

// GetMedicine returns a medicine by ID, or nil if it does not exist.
func GetMedicine(ctx context.Context, db *sql.DB, id int64) (*model.Medicine, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+medicineColumns+` FROM medicines WHERE id = ?`, id,
	)
	m, err := scanMedicine(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting medicine: %w", err)
	}
	return m, nil
}

// ListMedicines returns every medicine ordered by name.
func ListMedicines(ctx context.Context, db *sql.DB) ([]model.Medicine, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+medicineColumns+` FROM medicines ORDER BY name ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing medicines: %w", err)
	}
	defer rows.Close()

	var meds []model.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning medicine: %w", err)
		}
		meds = append(meds, *m)
	}
	return meds, rows.Err()
}

// UpdateMedicineLocation overwrites all four location fields and stamps
// last_updated. Unset fields are stored as NULL.
func UpdateMedicineLocation(ctx context.Context, db *sql.DB, id int64, loc model.Location, at time.Time) error {
	result, err := db.ExecContext(ctx,
		`UPDATE medicines SET baris = ?, rak = ?, tingkat = ?, petak = ?, last_updated = ?
		 WHERE id = ?`,
		nullString(loc.Baris), nullString(loc.Rak), nullString(loc.Tingkat), nullString(loc.Petak),
		at.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating medicine location: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated medicine: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("updating medicine location: medicine %d not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedicine(row rowScanner) (*model.Medicine, error) {
	m := &model.Medicine{}
	var baris, rak, tingkat, petak sql.NullString
	if err := row.Scan(&m.ID, &m.Name, &baris, &rak, &tingkat, &petak, &m.LastUpdated); err != nil {
		return nil, err
	}
	m.Location = model.Location{
		Baris:   baris.String,
		Rak:     rak.String,
		Tingkat: tingkat.String,
		Petak:   petak.String,
	}
	return m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
