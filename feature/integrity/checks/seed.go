package checks

import (
	"context"
	"fmt"

	"teamboard/feature/seed"
)

// SeedReport is the result of the seed check.
type SeedReport struct {
	Source   string         `json:"source"`
	Entries  int            `json:"entries"`
	Problems []seed.Problem `json:"problems"`
	// Importable reports whether an import with the configured policy would succeed.
	Importable bool   `json:"importable"`
	Status     string `json:"status"` // "ok", "warning", "error"
}

// CheckSeed reads and parses the seed document without importing it.
func CheckSeed(ctx context.Context, src seed.Source, strict bool) (*SeedReport, error) {
	if src == nil {
		return nil, fmt.Errorf("no seed source configured")
	}

	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}

	report := &SeedReport{Source: src.Name()}
	entries, problems, err := seed.Parse(data, false)
	if err != nil {
		report.Status = "error"
		report.Problems = []seed.Problem{{Index: -1, Reason: err.Error()}}
		return report, nil
	}

	report.Entries = len(entries)
	report.Problems = problems
	report.Importable = !strict || len(problems) == 0
	switch {
	case !report.Importable:
		report.Status = "error"
	case len(problems) > 0:
		report.Status = "warning"
	default:
		report.Status = "ok"
	}
	return report, nil
}
