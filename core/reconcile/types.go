package reconcile

import "fmt"

// Row is one entry of a snapshot section.
type Row struct {
	// ID is the record identity. It is the only key used to match rows across snapshots.
	ID string `json:"id"`
	// Version fingerprints the record fields; a change on a row that stays in place yields an update.
	Version string `json:"version"`
}

// Section is a keyed, ordered run of rows.
type Section struct {
	Key  string `json:"key"`
	Rows []Row  `json:"rows"`
}

// Snapshot is an immutable, fully materialized sectioned view.
type Snapshot struct {
	// Generation is the store generation the snapshot reflects.
	Generation uint64    `json:"generation"`
	Sections   []Section `json:"sections"`
}

// Len returns the total number of rows.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Rows)
	}
	return n
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	out := &Snapshot{Generation: s.Generation, Sections: make([]Section, len(s.Sections))}
	for i, sec := range s.Sections {
		out.Sections[i] = Section{Key: sec.Key, Rows: append([]Row(nil), sec.Rows...)}
	}
	return out
}

// OpType represents the kind of edit operation.
type OpType string

const (
	// OpSectionInsert inserts an empty section at Section.
	OpSectionInsert OpType = "section_insert"
	// OpSectionDelete removes the section at Section together with any rows left in it.
	OpSectionDelete OpType = "section_delete"
	// OpRowInsert inserts row ID at (Section, Row).
	OpRowInsert OpType = "row_insert"
	// OpRowDelete removes the row at (Section, Row).
	OpRowDelete OpType = "row_delete"
	// OpRowMove removes the row at (Section, Row), then inserts it at (ToSection, ToRow).
	OpRowMove OpType = "row_move"
	// OpRowUpdate replaces the version of the row at (Section, Row).
	OpRowUpdate OpType = "row_update"
)

// Operation is a single edit. Indices refer to the state produced by all previous
// operations of the same batch, so consumers apply a batch strictly in order.
type Operation struct {
	Type      OpType `json:"type"`
	Section   int    `json:"section"`
	Row       int    `json:"row"`
	ToSection int    `json:"to_section,omitempty"`
	ToRow     int    `json:"to_row,omitempty"`
	// Key is the section key for section operations.
	Key string `json:"key,omitempty"`
	// ID is the record identity for row operations.
	ID string `json:"id,omitempty"`
	// Version is the new record version for row inserts, moves and updates.
	Version string `json:"version,omitempty"`
}

func (o Operation) String() string {
	switch o.Type {
	case OpSectionInsert, OpSectionDelete:
		return fmt.Sprintf("%s(%d %q)", o.Type, o.Section, o.Key)
	case OpRowMove:
		return fmt.Sprintf("%s(%d,%d -> %d,%d %s)", o.Type, o.Section, o.Row, o.ToSection, o.ToRow, o.ID)
	default:
		return fmt.Sprintf("%s(%d,%d %s)", o.Type, o.Section, o.Row, o.ID)
	}
}

// Summary provides aggregate counts for an operation batch.
type Summary struct {
	SectionInserts int `json:"section_inserts"`
	SectionDeletes int `json:"section_deletes"`
	RowInserts     int `json:"row_inserts"`
	RowDeletes     int `json:"row_deletes"`
	RowMoves       int `json:"row_moves"`
	RowUpdates     int `json:"row_updates"`
}

// Total returns the number of operations counted.
func (s Summary) Total() int {
	return s.SectionInserts + s.SectionDeletes + s.RowInserts + s.RowDeletes + s.RowMoves + s.RowUpdates
}
