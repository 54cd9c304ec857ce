package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/opmc/inventory/internal/model"
)

// Gateway adapts the SQLite store functions to the inventory gateway interface.
type Gateway struct {
	DB *sql.DB
}

// NewGateway returns a gateway backed by db.
func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{DB: db}
}

func (g *Gateway) ListMedicines(ctx context.Context) ([]model.Medicine, error) {
	return ListMedicines(ctx, g.DB)
}

func (g *Gateway) UpdateMedicineLocation(ctx context.Context, id int64, loc model.Location, at time.Time) error {
	return UpdateMedicineLocation(ctx, g.DB, id, loc, at)
}

func (g *Gateway) ListLocationOptions(ctx context.Context) ([]model.LocationOption, error) {
	return ListLocationOptions(ctx, g.DB)
}

func (g *Gateway) CreateLocationOption(ctx context.Context, category model.Category, value string) (*model.LocationOption, error) {
	return CreateLocationOption(ctx, g.DB, category, value)
}

func (g *Gateway) DeleteLocationOption(ctx context.Context, id int64) error {
	return DeleteLocationOption(ctx, g.DB, id)
}
