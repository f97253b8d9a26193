package reconcile

import (
	"fmt"
	"slices"
)

// Apply replays ops against a copy of s and returns the result.
// It fails on the first operation whose indices do not fit the current state.
func Apply(s *Snapshot, ops []Operation) (*Snapshot, error) {
	st := newState(s)
	for i, op := range ops {
		if err := st.apply(op); err != nil {
			return nil, fmt.Errorf("operation %d %s: %w", i, op, err)
		}
	}
	out := &Snapshot{Sections: st.sections}
	if s != nil {
		out.Generation = s.Generation
	}
	return out, nil
}

// Summarize counts the operations of a batch by type.
func Summarize(ops []Operation) Summary {
	var sum Summary
	for _, op := range ops {
		switch op.Type {
		case OpSectionInsert:
			sum.SectionInserts++
		case OpSectionDelete:
			sum.SectionDeletes++
		case OpRowInsert:
			sum.RowInserts++
		case OpRowDelete:
			sum.RowDeletes++
		case OpRowMove:
			sum.RowMoves++
		case OpRowUpdate:
			sum.RowUpdates++
		}
	}
	return sum
}

// state is a mutable working copy of a snapshot's sections.
type state struct {
	sections []Section
}

func newState(s *Snapshot) *state {
	return &state{sections: s.Clone().Sections}
}

func (st *state) apply(op Operation) error {
	switch op.Type {
	case OpSectionInsert:
		if op.Section < 0 || op.Section > len(st.sections) {
			return fmt.Errorf("section %d out of range [0,%d]", op.Section, len(st.sections))
		}
		st.sections = slices.Insert(st.sections, op.Section, Section{Key: op.Key})

	case OpSectionDelete:
		if err := st.checkSection(op.Section); err != nil {
			return err
		}
		st.sections = slices.Delete(st.sections, op.Section, op.Section+1)

	case OpRowInsert:
		if err := st.checkSection(op.Section); err != nil {
			return err
		}
		if n := len(st.sections[op.Section].Rows); op.Row < 0 || op.Row > n {
			return fmt.Errorf("row %d out of range [0,%d]", op.Row, n)
		}
		st.insert(location{section: op.Section, row: op.Row}, Row{ID: op.ID, Version: op.Version})

	case OpRowDelete:
		if err := st.checkRow(op.Section, op.Row, op.ID); err != nil {
			return err
		}
		st.remove(location{section: op.Section, row: op.Row})

	case OpRowMove:
		if err := st.checkRow(op.Section, op.Row, op.ID); err != nil {
			return err
		}
		row := st.remove(location{section: op.Section, row: op.Row})
		if err := st.checkSection(op.ToSection); err != nil {
			return err
		}
		if n := len(st.sections[op.ToSection].Rows); op.ToRow < 0 || op.ToRow > n {
			return fmt.Errorf("target row %d out of range [0,%d]", op.ToRow, n)
		}
		if op.Version != "" {
			row.Version = op.Version
		}
		st.insert(location{section: op.ToSection, row: op.ToRow}, row)

	case OpRowUpdate:
		if err := st.checkRow(op.Section, op.Row, op.ID); err != nil {
			return err
		}
		st.sections[op.Section].Rows[op.Row].Version = op.Version

	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
	return nil
}

func (st *state) checkSection(s int) error {
	if s < 0 || s >= len(st.sections) {
		return fmt.Errorf("section %d out of range [0,%d)", s, len(st.sections))
	}
	return nil
}

func (st *state) checkRow(s, r int, id string) error {
	if err := st.checkSection(s); err != nil {
		return err
	}
	rows := st.sections[s].Rows
	if r < 0 || r >= len(rows) {
		return fmt.Errorf("row %d out of range [0,%d)", r, len(rows))
	}
	if id != "" && rows[r].ID != id {
		return fmt.Errorf("row %d,%d holds %s, not %s", s, r, rows[r].ID, id)
	}
	return nil
}

func (st *state) insert(at location, row Row) {
	sec := &st.sections[at.section]
	sec.Rows = slices.Insert(sec.Rows, at.row, row)
}

func (st *state) remove(at location) Row {
	sec := &st.sections[at.section]
	row := sec.Rows[at.row]
	sec.Rows = slices.Delete(sec.Rows, at.row, at.row+1)
	return row
}

func (st *state) find(id string) (location, bool) {
	for s, sec := range st.sections {
		for r, row := range sec.Rows {
			if row.ID == id {
				return location{section: s, row: r}, true
			}
		}
	}
	return location{}, false
}

// after returns the insert index in section s for rows[r]: just past rows[r-1], or 0.
func (st *state) after(s int, rows []Row, r int) int {
	if r == 0 {
		return 0
	}
	pred := rows[r-1].ID
	for i, row := range st.sections[s].Rows {
		if row.ID == pred {
			return i + 1
		}
	}
	return len(st.sections[s].Rows)
}
