package model

import (
	"errors"
	"time"
)

// ErrDuplicateOption is returned by gateways when a (category, value) pair
// already exists.
var ErrDuplicateOption = errors.New("location option already exists")

// LocationOption is one allowed value for a location category.
type LocationOption struct {
	ID        int64     `json:"id"`
	Category  Category  `json:"category"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// OptionGroups holds location options split by category.
type OptionGroups struct {
	Baris   []LocationOption `json:"baris"`
	Rak     []LocationOption `json:"rak"`
	Tingkat []LocationOption `json:"tingkat"`
	Petak   []LocationOption `json:"petak"`
}

// GroupOptions splits a flat option list by category, keeping input order.
// Options with an unknown category are dropped.
func GroupOptions(opts []LocationOption) OptionGroups {
	var g OptionGroups
	for _, o := range opts {
		switch o.Category {
		case CategoryBaris:
			g.Baris = append(g.Baris, o)
		case CategoryRak:
			g.Rak = append(g.Rak, o)
		case CategoryTingkat:
			g.Tingkat = append(g.Tingkat, o)
		case CategoryPetak:
			g.Petak = append(g.Petak, o)
		}
	}
	return g
}

// For returns the options of one category.
func (g OptionGroups) For(c Category) []LocationOption {
	switch c {
	case CategoryBaris:
		return g.Baris
	case CategoryRak:
		return g.Rak
	case CategoryTingkat:
		return g.Tingkat
	case CategoryPetak:
		return g.Petak
	}
	return nil
}

// Has reports whether value is an option of category c.
func (g OptionGroups) Has(c Category, value string) bool {
	for _, o := range g.For(c) {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Find returns the option with the given id.
func (g OptionGroups) Find(id int64) (LocationOption, bool) {
	for _, c := range Categories {
		for _, o := range g.For(c) {
			if o.ID == id {
				return o, true
			}
		}
	}
	return LocationOption{}, false
}

// Len returns the total number of options.
func (g OptionGroups) Len() int {
	return len(g.Baris) + len(g.Rak) + len(g.Tingkat) + len(g.Petak)
}
