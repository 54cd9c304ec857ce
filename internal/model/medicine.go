package model

import "time"

// Medicine is a stored item with an optional shelf location.
type Medicine struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Location    Location   `json:"location"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// LocationCode returns the medicine's location code if the location is complete.
func (m Medicine) LocationCode() (string, bool) {
	return m.Location.Code()
}
