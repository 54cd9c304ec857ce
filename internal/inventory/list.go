package inventory

import (
	"context"

	"github.com/opmc/inventory/internal/model"
)

// List is the inventory screen's in-memory collection. It is replaced
// wholesale by every successful load and never patched locally.
type List struct {
	gw      Gateway
	items   []model.Medicine
	loading bool
	loaded  bool
}

// NewList returns an empty list reading from gw.
func NewList(gw Gateway) *List {
	return &List{gw: gw}
}

// Load fetches all medicines. On failure the previous collection is kept.
func (l *List) Load(ctx context.Context) error {
	l.Begin()
	items, err := FetchMedicines(ctx, l.gw)
	return l.Finish(items, err)
}

// Begin marks a load as in flight. Callers that fetch asynchronously pair it
// with Finish.
func (l *List) Begin() {
	l.loading = true
}

// Finish applies the result of a fetch started with Begin.
func (l *List) Finish(items []model.Medicine, err error) error {
	l.loading = false
	if err != nil {
		return err
	}
	l.items = items
	l.loaded = true
	return nil
}

// Loading reports whether a load is in flight.
func (l *List) Loading() bool { return l.loading }

// Loaded reports whether at least one load has succeeded.
func (l *List) Loaded() bool { return l.loaded }

// Items returns the loaded collection.
func (l *List) Items() []model.Medicine { return l.items }

// Visible derives the filtered view without touching the gateway.
func (l *List) Visible(search string, tab Tab) []model.Medicine {
	return Filter(l.items, search, tab)
}

// Counts tallies the current search matches per tab.
func (l *List) Counts(search string) TabCounts {
	return Count(l.items, search)
}

// Find returns the loaded medicine with the given id.
func (l *List) Find(id int64) (model.Medicine, bool) {
	for _, m := range l.items {
		if m.ID == id {
			return m, true
		}
	}
	return model.Medicine{}, false
}
