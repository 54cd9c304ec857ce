package inventory

import (
	"context"
	"time"

	"github.com/opmc/inventory/internal/model"
)

// Gateway is the data store behind every screen. Implementations live in
// internal/store (SQLite) and internal/supabase (PostgREST).
type Gateway interface {
	// ListMedicines returns all medicines ordered by name ascending.
	ListMedicines(ctx context.Context) ([]model.Medicine, error)
	// UpdateMedicineLocation overwrites all four location fields in one write.
	UpdateMedicineLocation(ctx context.Context, id int64, loc model.Location, at time.Time) error
	// ListLocationOptions returns all options ordered by value ascending.
	ListLocationOptions(ctx context.Context) ([]model.LocationOption, error)
	// CreateLocationOption wraps model.ErrDuplicateOption on a unique violation.
	CreateLocationOption(ctx context.Context, category model.Category, value string) (*model.LocationOption, error)
	DeleteLocationOption(ctx context.Context, id int64) error
}

// FetchMedicines loads every medicine.
func FetchMedicines(ctx context.Context, gw Gateway) ([]model.Medicine, error) {
	meds, err := gw.ListMedicines(ctx)
	if err != nil {
		return nil, fetchError("loading medicines", "Failed to load medicines", err)
	}
	return meds, nil
}

// FetchOptions loads every location option grouped by category.
func FetchOptions(ctx context.Context, gw Gateway) (model.OptionGroups, error) {
	opts, err := gw.ListLocationOptions(ctx)
	if err != nil {
		return model.OptionGroups{}, fetchError("loading location options", "Failed to load location options", err)
	}
	return model.GroupOptions(opts), nil
}

// SaveLocation persists a location draft for one medicine.
func SaveLocation(ctx context.Context, gw Gateway, id int64, loc model.Location, at time.Time) error {
	if err := gw.UpdateMedicineLocation(ctx, id, loc, at); err != nil {
		return writeError("saving location", "Failed to update location", err)
	}
	return nil
}
