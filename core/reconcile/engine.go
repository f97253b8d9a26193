package reconcile

import "sort"

type location struct {
	section int
	row     int
}

// Diff computes the ordered operations that turn old into next.
// Section keys and row ids are expected to be unique within each snapshot.
// A nil snapshot is treated as empty.
func Diff(old, next *Snapshot) []Operation {
	if old == nil {
		old = &Snapshot{}
	}
	if next == nil {
		next = &Snapshot{}
	}

	keptOld, keptNew := matchSections(old, next)

	oldLoc := locate(old)
	newLoc := locate(next)

	// A surviving row stays in a kept section on both sides and may be moved.
	survives := func(id string) bool {
		o, inOld := oldLoc[id]
		n, inNew := newLoc[id]
		return inOld && inNew && keptOld[o.section] && keptNew[n.section]
	}

	anchors := findAnchors(old, next, keptOld, newLoc, survives)

	var ops []Operation
	st := newState(old)
	emit := func(op Operation) {
		// Operations built here are valid by construction.
		_ = st.apply(op)
		ops = append(ops, op)
	}

	// 1. Row deletes in surviving sections, from the end.
	for s := len(old.Sections) - 1; s >= 0; s-- {
		if !keptOld[s] {
			continue
		}
		rows := old.Sections[s].Rows
		for r := len(rows) - 1; r >= 0; r-- {
			if !survives(rows[r].ID) {
				emit(Operation{Type: OpRowDelete, Section: s, Row: r, ID: rows[r].ID})
			}
		}
	}

	// 2. Section deletes, from the end.
	for s := len(old.Sections) - 1; s >= 0; s-- {
		if !keptOld[s] {
			emit(Operation{Type: OpSectionDelete, Section: s, Key: old.Sections[s].Key})
		}
	}

	// 3. Section inserts, from the start.
	for s, sec := range next.Sections {
		if !keptNew[s] {
			emit(Operation{Type: OpSectionInsert, Section: s, Key: sec.Key})
		}
	}

	// 4. Moves and inserts. Each row is placed right after its new predecessor,
	// which is either an anchor or was placed earlier.
	for s, sec := range next.Sections {
		for r, row := range sec.Rows {
			if _, ok := anchors[row.ID]; ok {
				continue
			}

			if survives(row.ID) {
				from, _ := st.find(row.ID)
				st.remove(from)
				to := st.after(s, sec.Rows, r)
				st.insert(location{section: s, row: to}, row)
				ops = append(ops, Operation{
					Type:      OpRowMove,
					Section:   from.section,
					Row:       from.row,
					ToSection: s,
					ToRow:     to,
					ID:        row.ID,
					Version:   row.Version,
				})
				continue
			}

			emit(Operation{Type: OpRowInsert, Section: s, Row: st.after(s, sec.Rows, r), ID: row.ID, Version: row.Version})
		}
	}

	// 5. Updates for anchored rows, at final indices.
	for s, sec := range next.Sections {
		for r, row := range sec.Rows {
			prev, ok := anchors[row.ID]
			if ok && prev != row.Version {
				emit(Operation{Type: OpRowUpdate, Section: s, Row: r, ID: row.ID, Version: row.Version})
			}
		}
	}

	return ops
}

// matchSections marks the sections kept on both sides. Shared keys whose relative
// order changed are left out of the longest ordered run and get deleted and reinserted.
func matchSections(old, next *Snapshot) (keptOld, keptNew map[int]bool) {
	newIdx := make(map[string]int, len(next.Sections))
	for i, sec := range next.Sections {
		newIdx[sec.Key] = i
	}

	var oldPos, newPos []int
	for i, sec := range old.Sections {
		if j, ok := newIdx[sec.Key]; ok {
			oldPos = append(oldPos, i)
			newPos = append(newPos, j)
		}
	}

	keptOld = make(map[int]bool, len(oldPos))
	keptNew = make(map[int]bool, len(newPos))
	for _, k := range longestIncreasing(newPos) {
		keptOld[oldPos[k]] = true
		keptNew[newPos[k]] = true
	}
	return keptOld, keptNew
}

// findAnchors returns the rows left in place, keyed by id with their old version.
// Among equally long runs it keeps the one holding the most unchanged rows, so a
// record that changed and repositioned is the one that moves.
func findAnchors(old, next *Snapshot, keptOld map[int]bool, newLoc map[string]location, survives func(string) bool) map[string]string {
	anchors := make(map[string]string)
	for s, sec := range old.Sections {
		if !keptOld[s] {
			continue
		}
		target := sectionOf(next, sec.Key)

		// Rows staying in this section, in old order, with their next row index.
		var rows []Row
		var pos []int
		var unchanged []bool
		for _, row := range sec.Rows {
			if !survives(row.ID) {
				continue
			}
			if n := newLoc[row.ID]; n.section == target {
				rows = append(rows, row)
				pos = append(pos, n.row)
				unchanged = append(unchanged, next.Sections[n.section].Rows[n.row].Version == row.Version)
			}
		}

		for _, k := range longestIncreasingPreferring(pos, unchanged) {
			anchors[rows[k].ID] = rows[k].Version
		}
	}
	return anchors
}

func sectionOf(s *Snapshot, key string) int {
	for i, sec := range s.Sections {
		if sec.Key == key {
			return i
		}
	}
	return -1
}

func locate(s *Snapshot) map[string]location {
	out := make(map[string]location, s.Len())
	for i, sec := range s.Sections {
		for j, row := range sec.Rows {
			out[row.ID] = location{section: i, row: j}
		}
	}
	return out
}

// longestIncreasing returns the indices of a longest strictly increasing subsequence of seq.
func longestIncreasing(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}

	// tails[k] is the index in seq of the smallest tail of an increasing run of length k+1.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i, v := range seq {
		k := sort.Search(len(tails), func(j int) bool { return seq[tails[j]] >= v })
		if k > 0 {
			prev[i] = tails[k-1]
		} else {
			prev[i] = -1
		}
		if k == len(tails) {
			tails = append(tails, i)
		} else {
			tails[k] = i
		}
	}

	out := make([]int, len(tails))
	for i, k := len(tails)-1, tails[len(tails)-1]; i >= 0; i-- {
		out[i] = k
		k = prev[k]
	}
	return out
}

// longestIncreasingPreferring returns the indices of a longest strictly increasing
// subsequence of seq. Ties in length go to the run with the most preferred entries.
func longestIncreasingPreferring(seq []int, preferred []bool) []int {
	if len(seq) == 0 {
		return nil
	}

	// length[i] and score[i] describe the best run ending at i.
	length := make([]int, len(seq))
	score := make([]int, len(seq))
	prev := make([]int, len(seq))
	best := 0
	for i, v := range seq {
		length[i], score[i], prev[i] = 1, 0, -1
		for j := 0; j < i; j++ {
			if seq[j] >= v {
				continue
			}
			if length[j]+1 > length[i] || (length[j]+1 == length[i] && score[j] > score[i]) {
				length[i], score[i], prev[i] = length[j]+1, score[j], j
			}
		}
		if preferred[i] {
			score[i]++
		}
		if length[i] > length[best] || (length[i] == length[best] && score[i] > score[best]) {
			best = i
		}
	}

	out := make([]int, length[best])
	for i, k := len(out)-1, best; i >= 0; i-- {
		out[i] = k
		k = prev[k]
	}
	return out
}
