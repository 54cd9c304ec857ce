package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/opmc/inventory/internal/db"
	"github.com/opmc/inventory/internal/model"
	"github.com/opmc/inventory/internal/store"
)

var errBackend = errors.New("backend unavailable")

// flakyGateway wraps a real gateway and fails the operations switched on.
type flakyGateway struct {
	Gateway
	failList    bool
	failUpdate  bool
	failOptions bool
	failCreate  bool
	failDelete  bool
	updates     int
}

func (g *flakyGateway) ListMedicines(ctx context.Context) ([]model.Medicine, error) {
	if g.failList {
		return nil, errBackend
	}
	return g.Gateway.ListMedicines(ctx)
}

func (g *flakyGateway) UpdateMedicineLocation(ctx context.Context, id int64, loc model.Location, at time.Time) error {
	g.updates++
	if g.failUpdate {
		return errBackend
	}
	return g.Gateway.UpdateMedicineLocation(ctx, id, loc, at)
}

func (g *flakyGateway) ListLocationOptions(ctx context.Context) ([]model.LocationOption, error) {
	if g.failOptions {
		return nil, errBackend
	}
	return g.Gateway.ListLocationOptions(ctx)
}

func (g *flakyGateway) CreateLocationOption(ctx context.Context, c model.Category, v string) (*model.LocationOption, error) {
	if g.failCreate {
		return nil, errBackend
	}
	return g.Gateway.CreateLocationOption(ctx, c, v)
}

func (g *flakyGateway) DeleteLocationOption(ctx context.Context, id int64) error {
	if g.failDelete {
		return errBackend
	}
	return g.Gateway.DeleteLocationOption(ctx, id)
}

// newTestGateway returns a gateway over a fresh database seeded with the
// given medicines and one full set of options (A1, 2, 3, 4).
func newTestGateway(t *testing.T, names ...string) (*flakyGateway, []model.Medicine) {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()

	var meds []model.Medicine
	for _, name := range names {
		m, err := store.CreateMedicine(ctx, database, name)
		if err != nil {
			t.Fatalf("CreateMedicine(%q): %v", name, err)
		}
		meds = append(meds, *m)
	}

	seed := map[model.Category]string{
		model.CategoryBaris:   "A1",
		model.CategoryRak:     "2",
		model.CategoryTingkat: "3",
		model.CategoryPetak:   "4",
	}
	for c, v := range seed {
		if _, err := store.CreateLocationOption(ctx, database, c, v); err != nil {
			t.Fatalf("CreateLocationOption: %v", err)
		}
	}

	return &flakyGateway{Gateway: store.NewGateway(database)}, meds
}
