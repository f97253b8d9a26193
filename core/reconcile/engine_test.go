package reconcile

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snap builds a snapshot from "key:id,id" sections. Versions default to "v1".
func snap(layout ...string) *Snapshot {
	s := &Snapshot{}
	for _, sec := range layout {
		key, ids, _ := strings.Cut(sec, ":")
		section := Section{Key: key}
		for _, id := range strings.Split(ids, ",") {
			if id != "" {
				section.Rows = append(section.Rows, Row{ID: id, Version: "v1"})
			}
		}
		s.Sections = append(s.Sections, section)
	}
	return s
}

func assertRoundTrip(t *testing.T, old, next *Snapshot) []Operation {
	t.Helper()
	ops := Diff(old, next)
	got, err := Apply(old, ops)
	require.NoError(t, err, "ops: %v", ops)
	assert.Equal(t, normalize(next), normalize(got), "ops: %v", ops)
	return ops
}

// normalize maps nil and empty row slices to the same value for comparison.
func normalize(s *Snapshot) []Section {
	out := make([]Section, 0, len(s.Sections))
	for _, sec := range s.Sections {
		rows := sec.Rows
		if rows == nil {
			rows = []Row{}
		}
		out = append(out, Section{Key: sec.Key, Rows: rows})
	}
	return out
}

func TestDiff_Identical(t *testing.T) {
	s := snap("Asia:a,b", "Europe:c")
	assert.Empty(t, Diff(s, s.Clone()))
	assert.Empty(t, Diff(nil, nil))
}

func TestDiff_SingleMoveWithinSection(t *testing.T) {
	old := snap("Europe:a,b,c,d")
	next := snap("Europe:a,d,b,c")
	next.Sections[0].Rows[1].Version = "v2"

	ops := assertRoundTrip(t, old, next)
	require.Len(t, ops, 1)
	assert.Equal(t, OpRowMove, ops[0].Type)
	assert.Equal(t, "d", ops[0].ID)
	assert.Equal(t, 0, ops[0].Section)
	assert.Equal(t, 3, ops[0].Row)
	assert.Equal(t, 0, ops[0].ToSection)
	assert.Equal(t, 1, ops[0].ToRow)
	assert.Equal(t, "v2", ops[0].Version)
}

func TestDiff_ChangedRowIsTheOneMoved(t *testing.T) {
	tests := []struct {
		name    string
		old     string
		next    string
		changed string
		from    int
		to      int
	}{
		{"Adjacent up", "Asia:aus,jpn", "Asia:jpn,aus", "jpn", 1, 0},
		{"Adjacent down", "Asia:aus,jpn", "Asia:jpn,aus", "aus", 0, 1},
		{"Distant up", "Europe:a,b,c,d", "Europe:a,d,b,c", "d", 3, 1},
		{"Distant down", "Europe:a,b,c,d", "Europe:b,c,a,d", "a", 0, 2},
		{"Top to bottom", "Europe:a,b,c,d", "Europe:b,c,d,a", "a", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := snap(tt.old)
			next := snap(tt.next)
			for i, row := range next.Sections[0].Rows {
				if row.ID == tt.changed {
					next.Sections[0].Rows[i].Version = "v2"
				}
			}

			ops := assertRoundTrip(t, old, next)
			require.Len(t, ops, 1, "ops: %v", ops)
			assert.Equal(t, OpRowMove, ops[0].Type)
			assert.Equal(t, tt.changed, ops[0].ID)
			assert.Equal(t, "v2", ops[0].Version)
			assert.Equal(t, tt.from, ops[0].Row)
			assert.Equal(t, tt.to, ops[0].ToRow)
		})
	}
}

func TestDiff_SectionInsertThenRowInsert(t *testing.T) {
	old := snap("Asia:a", "Europe:b")
	next := snap("Africa:n", "Asia:a", "Europe:b")

	ops := assertRoundTrip(t, old, next)
	require.Len(t, ops, 2)
	assert.Equal(t, Operation{Type: OpSectionInsert, Section: 0, Key: "Africa"}, ops[0])
	assert.Equal(t, OpRowInsert, ops[1].Type)
	assert.Equal(t, 0, ops[1].Section)
	assert.Equal(t, 0, ops[1].Row)
	assert.Equal(t, "n", ops[1].ID)
}

func TestDiff_UpdateInPlace(t *testing.T) {
	old := snap("Asia:a,b")
	next := snap("Asia:a,b")
	next.Sections[0].Rows[1].Version = "v2"

	ops := assertRoundTrip(t, old, next)
	require.Len(t, ops, 1)
	assert.Equal(t, Operation{Type: OpRowUpdate, Section: 0, Row: 1, ID: "b", Version: "v2"}, ops[0])
}

func TestDiff_SectionChange(t *testing.T) {
	t.Run("Both sections survive", func(t *testing.T) {
		old := snap("Asia:a,b", "Europe:c")
		next := snap("Asia:a", "Europe:b,c")

		ops := assertRoundTrip(t, old, next)
		require.Len(t, ops, 1)
		assert.Equal(t, OpRowMove, ops[0].Type)
		assert.Equal(t, "b", ops[0].ID)
		assert.Equal(t, 1, ops[0].ToSection)
		assert.Equal(t, 0, ops[0].ToRow)
	})

	t.Run("Old section removed", func(t *testing.T) {
		old := snap("Asia:a", "Europe:c")
		next := snap("Europe:a,c")

		ops := assertRoundTrip(t, old, next)
		require.Len(t, ops, 2)
		assert.Equal(t, Operation{Type: OpSectionDelete, Section: 0, Key: "Asia"}, ops[0])
		assert.Equal(t, OpRowInsert, ops[1].Type)
		assert.Equal(t, "a", ops[1].ID)
	})

	t.Run("New section created", func(t *testing.T) {
		old := snap("Asia:a,b")
		next := snap("Asia:a", "Oceania:b")

		ops := assertRoundTrip(t, old, next)
		types := make([]OpType, len(ops))
		for i, op := range ops {
			types[i] = op.Type
		}
		assert.Equal(t, []OpType{OpRowDelete, OpSectionInsert, OpRowInsert}, types)
		for _, op := range ops {
			assert.NotEqual(t, OpRowUpdate, op.Type)
		}
	})
}

func TestDiff_DeleteOrderIsDescending(t *testing.T) {
	old := snap("A:a1,a2,a3", "B:b1", "C:c1,c2")
	next := snap("A:a2", "C:c1")

	ops := assertRoundTrip(t, old, next)
	expected := []Operation{
		{Type: OpRowDelete, Section: 2, Row: 1, ID: "c2"},
		{Type: OpRowDelete, Section: 0, Row: 2, ID: "a3"},
		{Type: OpRowDelete, Section: 0, Row: 0, ID: "a1"},
		{Type: OpSectionDelete, Section: 1, Key: "B"},
	}
	assert.Equal(t, expected, ops)
}

func TestDiff_ReorderedSections(t *testing.T) {
	old := snap("A:a", "B:b", "C:c")
	next := snap("C:c", "A:a", "B:b")
	assertRoundTrip(t, old, next)
}

func TestDiff_Reverse(t *testing.T) {
	old := snap("S:a,b,c,d,e")
	next := snap("S:e,d,c,b,a")

	ops := assertRoundTrip(t, old, next)
	assert.Len(t, ops, 4)
}

func TestDiff_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	keys := []string{"Africa", "Asia", "Europe", "North America", "Oceania", "South America"}

	random := func() *Snapshot {
		s := &Snapshot{}
		ids := rng.Perm(12)
		next := 0
		for _, key := range keys {
			if rng.Intn(3) == 0 {
				continue
			}
			sec := Section{Key: key}
			for n := rng.Intn(4); n > 0 && next < len(ids); n-- {
				sec.Rows = append(sec.Rows, Row{ID: fmt.Sprintf("r%d", ids[next]), Version: fmt.Sprintf("v%d", rng.Intn(2))})
				next++
			}
			s.Sections = append(s.Sections, sec)
		}
		return s
	}

	for i := 0; i < 500; i++ {
		old, next := random(), random()
		ops := Diff(old, next)
		got, err := Apply(old, ops)
		require.NoError(t, err, "case %d ops: %v", i, ops)
		require.Equal(t, normalize(next), normalize(got), "case %d ops: %v", i, ops)
		assert.Empty(t, Diff(next, got), "case %d", i)
	}
}

func TestLongestIncreasing(t *testing.T) {
	tests := []struct {
		name string
		seq  []int
		want int
	}{
		{"Empty", nil, 0},
		{"Sorted", []int{0, 1, 2, 3}, 4},
		{"Reversed", []int{3, 2, 1, 0}, 1},
		{"One out of place", []int{0, 3, 1, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := longestIncreasing(tt.seq)
			assert.Len(t, idx, tt.want)
			for i := 1; i < len(idx); i++ {
				assert.Less(t, idx[i-1], idx[i])
				assert.Less(t, tt.seq[idx[i-1]], tt.seq[idx[i]])
			}
		})
	}
}

func TestLongestIncreasingPreferring(t *testing.T) {
	t.Run("Tie goes to preferred", func(t *testing.T) {
		assert.Equal(t, []int{0}, longestIncreasingPreferring([]int{1, 0}, []bool{true, false}))
		assert.Equal(t, []int{1}, longestIncreasingPreferring([]int{1, 0}, []bool{false, true}))
	})

	t.Run("Length wins over preference", func(t *testing.T) {
		got := longestIncreasingPreferring([]int{0, 3, 1, 2}, []bool{false, true, false, false})
		assert.Equal(t, []int{0, 2, 3}, got)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, longestIncreasingPreferring(nil, nil))
	})
}
