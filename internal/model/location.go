package model

import (
	"errors"
	"strings"
)

// Category is one of the four storage location axes.
type Category string

// Location categories, in location code order.
const (
	CategoryBaris   Category = "baris"
	CategoryRak     Category = "rak"
	CategoryTingkat Category = "tingkat"
	CategoryPetak   Category = "petak"
)

// Categories lists every category in the order used by location codes.
var Categories = [4]Category{CategoryBaris, CategoryRak, CategoryTingkat, CategoryPetak}

// ErrUnknownCategory is returned when parsing a category outside the fixed set.
var ErrUnknownCategory = errors.New("unknown location category")

// ParseCategory maps a raw string onto a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Label returns the human-readable name shown in forms.
func (c Category) Label() string {
	switch c {
	case CategoryBaris:
		return "Baris (Row)"
	case CategoryRak:
		return "Rak (Shelf)"
	case CategoryTingkat:
		return "Tingkat (Level)"
	case CategoryPetak:
		return "Petak (Compartment)"
	default:
		return string(c)
	}
}

// Title returns the capitalized category name used as a picker heading.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Location is a four-coordinate shelf position. An empty field is unset.
type Location struct {
	Baris   string `json:"baris"`
	Rak     string `json:"rak"`
	Tingkat string `json:"tingkat"`
	Petak   string `json:"petak"`
}

// Get returns the value stored for a category.
func (l Location) Get(c Category) string {
	switch c {
	case CategoryBaris:
		return l.Baris
	case CategoryRak:
		return l.Rak
	case CategoryTingkat:
		return l.Tingkat
	case CategoryPetak:
		return l.Petak
	}
	return ""
}

// With returns a copy of l with the category set to value.
func (l Location) With(c Category, value string) Location {
	switch c {
	case CategoryBaris:
		l.Baris = value
	case CategoryRak:
		l.Rak = value
	case CategoryTingkat:
		l.Tingkat = value
	case CategoryPetak:
		l.Petak = value
	}
	return l
}

// Complete reports whether all four fields are set.
func (l Location) Complete() bool {
	return l.Baris != "" && l.Rak != "" && l.Tingkat != "" && l.Petak != ""
}

// Code returns the dot-joined location code. ok is false unless the
// location is complete.
func (l Location) Code() (code string, ok bool) {
	if !l.Complete() {
		return "", false
	}
	return l.Baris + "." + l.Rak + "." + l.Tingkat + "." + l.Petak, true
}
