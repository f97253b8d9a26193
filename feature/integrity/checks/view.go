package checks

import (
	"context"

	"teamboard/core/liveview"
	"teamboard/core/query"
	"teamboard/core/reconcile"
	"teamboard/core/store"
)

// ViewReport compares the live view with a fresh evaluation of the store.
type ViewReport struct {
	Generation      uint64 `json:"generation"`
	StoreGeneration uint64 `json:"store_generation"`
	Sections        int    `json:"sections"`
	Rows            int    `json:"rows"`
	StoreRows       int    `json:"store_rows"`
	// Mismatch is the first position where the view and the fresh evaluation disagree.
	Mismatch *Position `json:"mismatch,omitempty"`
	InSync   bool      `json:"in_sync"`
	Status   string    `json:"status"` // "ok", "error"
}

// Position addresses a row of the view.
type Position struct {
	Section int    `json:"section"`
	Row     int    `json:"row"`
	Want    string `json:"want"`
	Got     string `json:"got"`
}

// CheckView evaluates spec against src and compares the result row by row with view.
func CheckView(ctx context.Context, view *liveview.Controller, src store.Store, spec query.Spec) (*ViewReport, error) {
	snap, err := view.Snapshot()
	if err != nil {
		return nil, err
	}

	recs, err := query.Evaluate(ctx, spec, src)
	if err != nil {
		return nil, err
	}
	groups := query.Sections(spec, recs)

	report := &ViewReport{
		Generation:      snap.Generation,
		StoreGeneration: src.Generation(),
		Sections:        len(snap.Sections),
		Rows:            snap.Len(),
		StoreRows:       len(recs),
	}
	report.Mismatch = firstMismatch(snap.Sections, groups)
	report.InSync = report.Mismatch == nil && report.Rows == report.StoreRows && len(groups) == report.Sections
	report.Status = "ok"
	if !report.InSync {
		report.Status = "error"
	}
	return report, nil
}

func firstMismatch(sections []reconcile.Section, groups []query.Group) *Position {
	for s := 0; s < len(sections) && s < len(groups); s++ {
		rows := sections[s].Rows
		want := groups[s].Records
		for r := 0; r < len(rows) && r < len(want); r++ {
			if rows[r].ID != want[r].ID || rows[r].Version != want[r].Fingerprint() {
				return &Position{Section: s, Row: r, Want: want[r].ID, Got: rows[r].ID}
			}
		}
	}
	return nil
}
