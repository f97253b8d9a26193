package query

import (
	"errors"
	"fmt"
	"strings"

	"teamboard/core/store"
)

// ErrInvalidSpec is returned for malformed sort or section configurations.
var ErrInvalidSpec = errors.New("invalid query spec")

// Field names a sortable record field.
type Field string

const (
	FieldZone Field = "zone"
	FieldWins Field = "wins"
	FieldName Field = "name"
)

// SortKey is one sort criterion.
type SortKey struct {
	Field      Field
	Descending bool
}

func (k SortKey) String() string {
	if k.Descending {
		return "-" + string(k.Field)
	}
	return string(k.Field)
}

// Spec describes how records are filtered, ordered and grouped into sections.
type Spec struct {
	// SortKeys are applied in priority order.
	SortKeys []SortKey
	// SectionKey groups records into sections. Empty means a single unnamed section.
	SectionKey Field
	// Filter optionally restricts the records. Nil keeps all records.
	Filter store.Predicate
}

// DefaultSpec orders by zone ascending, wins descending, name ascending and sections by zone.
func DefaultSpec() Spec {
	return Spec{
		SortKeys: []SortKey{
			{Field: FieldZone},
			{Field: FieldWins, Descending: true},
			{Field: FieldName},
		},
		SectionKey: FieldZone,
	}
}

// Validate checks that every field is known, no field repeats and the section key
// is the primary sort key.
func (s Spec) Validate() error {
	seen := make(map[Field]struct{}, len(s.SortKeys))
	for _, k := range s.SortKeys {
		if !k.Field.valid() {
			return fmt.Errorf("%w: unknown sort field %q", ErrInvalidSpec, k.Field)
		}
		if _, dup := seen[k.Field]; dup {
			return fmt.Errorf("%w: sort field %q listed twice", ErrInvalidSpec, k.Field)
		}
		seen[k.Field] = struct{}{}
	}

	if s.SectionKey == "" {
		return nil
	}
	if !s.SectionKey.valid() {
		return fmt.Errorf("%w: unknown section field %q", ErrInvalidSpec, s.SectionKey)
	}
	if len(s.SortKeys) == 0 || s.SortKeys[0].Field != s.SectionKey {
		return fmt.Errorf("%w: section key %q must be the primary sort key", ErrInvalidSpec, s.SectionKey)
	}
	return nil
}

// String renders the sort keys in the format accepted by ParseSortKeys.
func (s Spec) String() string {
	parts := make([]string, len(s.SortKeys))
	for i, k := range s.SortKeys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ",")
}

// ParseSortKeys parses a comma separated key list such as "zone,-wins,name".
// A leading '-' selects descending order.
func ParseSortKeys(raw string) ([]SortKey, error) {
	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := SortKey{}
		switch {
		case strings.HasPrefix(part, "-"):
			key.Descending = true
			part = part[1:]
		case strings.HasPrefix(part, "+"):
			part = part[1:]
		}
		key.Field = Field(strings.ToLower(strings.TrimSpace(part)))
		if !key.Field.valid() {
			return nil, fmt.Errorf("%w: unknown sort field %q", ErrInvalidSpec, key.Field)
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no sort keys in %q", ErrInvalidSpec, raw)
	}
	return keys, nil
}

func (f Field) valid() bool {
	switch f {
	case FieldZone, FieldWins, FieldName:
		return true
	default:
		return false
	}
}
