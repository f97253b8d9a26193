package store

import (
	"fmt"
	"strconv"
)

// Record is a single team entry.
type Record struct {
	// ID is the opaque identity assigned by the store. It never changes.
	ID string `json:"id"`
	// Seq is the insertion order assigned by the store.
	Seq uint64 `json:"seq"`
	// Name is the team name.
	Name string `json:"name"`
	// Zone is the qualifying zone of the team.
	Zone string `json:"zone"`
	// Wins is the number of wins, never negative.
	Wins int `json:"wins"`
	// ImageRef optionally names the image used to render the team.
	ImageRef *string `json:"image_ref,omitempty"`
}

// Predicate selects records.
type Predicate func(Record) bool

// Image returns the image reference or an empty string.
func (r Record) Image() string {
	if r.ImageRef == nil {
		return ""
	}
	return *r.ImageRef
}

// Fingerprint returns a value that changes whenever a user-visible field changes.
func (r Record) Fingerprint() string {
	img := "-"
	if r.ImageRef != nil {
		img = strconv.Quote(*r.ImageRef)
	}
	return fmt.Sprintf("%q|%q|%d|%s", r.Name, r.Zone, r.Wins, img)
}

// Validate checks the field constraints of a record.
func (r Record) Validate() error {
	if r.Wins < 0 {
		return fmt.Errorf("%w: wins must not be negative (got %d)", ErrInvalidRecord, r.Wins)
	}
	return nil
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

func (r Record) clone() Record {
	if r.ImageRef != nil {
		img := *r.ImageRef
		r.ImageRef = &img
	}
	return r
}
