package seed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	data := []byte(`[
		{"teamName":"Brazil","qualifyingZone":"South America","wins":5,"imageName":"br"},
		{"teamName":"Japan","qualifyingZone":"Asia","wins":0,"imageName":""}
	]`)

	entries, problems, err := Parse(data, true)
	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{TeamName: "Brazil", QualifyingZone: "South America", Wins: 5, ImageName: "br"}, entries[0])

	rec := entries[0].Record()
	assert.Equal(t, "Brazil", rec.Name)
	assert.Equal(t, "br", rec.Image())

	empty := entries[1].Record()
	require.NotNil(t, empty.ImageRef)
	assert.Equal(t, "", *empty.ImageRef)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		entry  string
		reason string
	}{
		{"missing name", `{"qualifyingZone":"Asia","wins":1,"imageName":"x"}`, `missing field "teamName"`},
		{"numeric zone", `{"teamName":"A","qualifyingZone":3,"wins":1,"imageName":"x"}`, `field "qualifyingZone" must be a string`},
		{"missing wins", `{"teamName":"A","qualifyingZone":"Asia","imageName":"x"}`, `missing field "wins"`},
		{"string wins", `{"teamName":"A","qualifyingZone":"Asia","wins":"3","imageName":"x"}`, `field "wins" must be a number`},
		{"fractional wins", `{"teamName":"A","qualifyingZone":"Asia","wins":1.5,"imageName":"x"}`, `non-negative integer`},
		{"negative wins", `{"teamName":"A","qualifyingZone":"Asia","wins":-1,"imageName":"x"}`, `non-negative integer`},
		{"null entry", `null`, `entry is null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`[{"teamName":"Ok","qualifyingZone":"Europe","wins":2,"imageName":"ok"},` + tt.entry + `]`)

			_, problems, err := Parse(data, true)
			assert.True(t, errors.Is(err, ErrImport))
			require.Len(t, problems, 1)
			assert.Equal(t, 1, problems[0].Index)
			assert.Contains(t, problems[0].Reason, tt.reason)

			entries, problems, err := Parse(data, false)
			require.NoError(t, err)
			require.Len(t, problems, 1)
			require.Len(t, entries, 1)
			assert.Equal(t, "Ok", entries[0].TeamName)
		})
	}
}

func TestParse_NotAnArray(t *testing.T) {
	for _, doc := range []string{`{"teamName":"A"}`, `not json`, ``} {
		_, _, err := Parse([]byte(doc), false)
		assert.ErrorIs(t, err, ErrImport, doc)
	}
}

func TestParse_Empty(t *testing.T) {
	entries, problems, err := Parse([]byte(`[]`), true)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, problems)
}
