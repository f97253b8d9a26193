package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"teamboard/core/store"
	"teamboard/core/utils"
)

var (
	// ErrImport is returned for unreadable seed sources and malformed seed data.
	ErrImport = errors.New("seed import failed")
)

// Entry is one validated seed record.
type Entry struct {
	TeamName       string `json:"teamName"`
	QualifyingZone string `json:"qualifyingZone"`
	ImageName      string `json:"imageName"`
	Wins           int    `json:"wins"`
}

// Record converts the entry into a store record.
func (e Entry) Record() store.Record {
	// imageName is required, so an explicit empty name is kept as present.
	return store.Record{
		Name:     e.TeamName,
		Zone:     e.QualifyingZone,
		Wins:     e.Wins,
		ImageRef: store.StringPtr(e.ImageName),
	}
}

// Problem describes a malformed seed entry.
type Problem struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

func (p Problem) String() string {
	return fmt.Sprintf("entry %d: %s", p.Index, p.Reason)
}

// Parse decodes a seed document. Every entry is checked; malformed ones are returned
// as problems. In strict mode any problem turns into an ErrImport error.
func Parse(data []byte, strict bool) ([]Entry, []Problem, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: seed document is not an array of objects: %v", ErrImport, err)
	}

	entries := make([]Entry, 0, len(raw))
	var problems []Problem
	for i, obj := range raw {
		entry, err := parseEntry(obj)
		if err != nil {
			problems = append(problems, Problem{Index: i, Reason: err.Error()})
			continue
		}
		entries = append(entries, entry)
	}

	if strict && len(problems) > 0 {
		reasons := make([]string, len(problems))
		for i, p := range problems {
			reasons[i] = p.String()
		}
		return nil, problems, fmt.Errorf("%w: %s", ErrImport, strings.Join(reasons, "; "))
	}
	return entries, problems, nil
}

func parseEntry(obj map[string]any) (Entry, error) {
	if obj == nil {
		return Entry{}, errors.New("entry is null")
	}

	var e Entry
	var err error
	if e.TeamName, err = stringField(obj, "teamName"); err != nil {
		return Entry{}, err
	}
	if e.QualifyingZone, err = stringField(obj, "qualifyingZone"); err != nil {
		return Entry{}, err
	}
	if e.ImageName, err = stringField(obj, "imageName"); err != nil {
		return Entry{}, err
	}

	v, ok := obj["wins"]
	if !ok {
		return Entry{}, errors.New(`missing field "wins"`)
	}
	if _, ok := v.(float64); !ok {
		return Entry{}, fmt.Errorf(`field "wins" must be a number, got %T`, v)
	}
	wins, ok := utils.WholeNumber(v)
	if !ok || wins < 0 {
		return Entry{}, fmt.Errorf(`field "wins" must be a non-negative integer, got %v`, v)
	}
	e.Wins = wins

	return e, nil
}

func stringField(obj map[string]any, name string) (string, error) {
	v, ok := obj[name]
	if !ok {
		return "", fmt.Errorf("missing field %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string, got %T", name, v)
	}
	return s, nil
}
