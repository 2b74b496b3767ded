package soilgen

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	rows := Generate(Config{SamplesPerClass: 200, Seed: 42})
	require.Len(t, rows, 600)

	counts := map[int]int{}
	for _, r := range rows {
		counts[r.Class]++
		for f, v := range r.Features {
			assert.False(t, math.IsNaN(v), "feature %d is NaN after imputation", f)
		}
		// pH stays within the class ranges plus the noise span
		assert.GreaterOrEqual(t, r.Features[3], 2.5)
		assert.LessOrEqual(t, r.Features[3], 9.5)
		// nitrogen never leaves the union of class ranges
		assert.GreaterOrEqual(t, r.Features[0], 10.0)
		assert.LessOrEqual(t, r.Features[0], 80.0)
	}
	assert.Equal(t, 200, counts[0])
	assert.Equal(t, 200, counts[1])
	assert.Equal(t, 200, counts[2])
}

func TestGenerateShuffles(t *testing.T) {
	rows := Generate(Config{SamplesPerClass: 100, Seed: 1})
	sameAsFirst := 0
	for _, r := range rows[:100] {
		if r.Class == rows[0].Class {
			sameAsFirst++
		}
	}
	assert.Less(t, sameAsFirst, 100, "rows were not shuffled")
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(Config{SamplesPerClass: 50, Seed: 7})
	b := Generate(Config{SamplesPerClass: 50, Seed: 7})
	assert.Equal(t, a, b)

	c := Generate(Config{SamplesPerClass: 50, Seed: 8})
	assert.NotEqual(t, a, c)
}

func TestWriteCSV(t *testing.T) {
	rows := Generate(Config{SamplesPerClass: 10, Seed: 42})
	path := filepath.Join(t.TempDir(), "Solos.csv")
	require.NoError(t, WriteCSV(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 31)

	wantHeader := append(append([]string(nil), Columns...), ClassLabel)
	assert.Equal(t, wantHeader, records[0])
	assert.Len(t, records[1], len(Columns)+1)
}
