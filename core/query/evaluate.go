package query

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"teamboard/core/store"
)

// Source provides the records to evaluate.
type Source interface {
	List(ctx context.Context) ([]store.Record, error)
}

// Group is a contiguous run of records sharing a section value.
type Group struct {
	Key     string
	Records []store.Record
}

// Evaluate lists records from src, applies the filter and sorts them per spec.
func Evaluate(ctx context.Context, spec Spec, src Source) ([]store.Record, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	all, err := src.List(ctx)
	if err != nil {
		return nil, err
	}

	records := all
	if spec.Filter != nil {
		records = make([]store.Record, 0, len(all))
		for _, r := range all {
			if spec.Filter(r) {
				records = append(records, r)
			}
		}
	}

	Sort(spec, records)
	return records, nil
}

// Sort orders records in place per spec, breaking final ties by insertion order and id.
func Sort(spec Spec, records []store.Record) {
	slices.SortStableFunc(records, func(a, b store.Record) int {
		for _, k := range spec.SortKeys {
			c := compareField(k.Field, a, b)
			if k.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Sections splits sorted records into contiguous groups by the spec's section key.
// Without a section key every record lands in one group with an empty key;
// an empty record list yields no groups.
func Sections(spec Spec, records []store.Record) []Group {
	var groups []Group
	for _, r := range records {
		key := SectionValue(spec.SectionKey, r)
		if n := len(groups); n > 0 && groups[n-1].Key == key {
			groups[n-1].Records = append(groups[n-1].Records, r)
			continue
		}
		groups = append(groups, Group{Key: key, Records: []store.Record{r}})
	}
	return groups
}

// SectionValue returns the section label of r for the given field.
func SectionValue(field Field, r store.Record) string {
	switch field {
	case FieldZone:
		return r.Zone
	case FieldName:
		return r.Name
	case FieldWins:
		return strconv.Itoa(r.Wins)
	default:
		return ""
	}
}

func compareField(field Field, a, b store.Record) int {
	switch field {
	case FieldZone:
		return cmp.Compare(a.Zone, b.Zone)
	case FieldWins:
		return cmp.Compare(a.Wins, b.Wins)
	case FieldName:
		return cmp.Compare(a.Name, b.Name)
	default:
		return 0
	}
}
