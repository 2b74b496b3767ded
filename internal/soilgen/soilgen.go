package soilgen

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Feature columns in output order; the class label column is appended last.
var Columns = []string{"Nitrogenio_N", "Fosforo_P", "Potassio_K", "pH", "Materia_Organica_pct", "Umidade_pct"}

// ClassLabel is the name of the fertility class column.
const ClassLabel = "Classe_Fertilidade"

const numFeatures = 6

type span struct{ min, max float64 }

// Per-class uniform sampling ranges for N, P, K, pH, organic matter and
// humidity; classes 0..2 are low, medium and high fertility.
var classRanges = [3][numFeatures]span{
	{{10, 40}, {5, 20}, {30, 70}, {4.5, 6.0}, {0.5, 2.0}, {10, 30}},
	{{25, 55}, {12, 28}, {50, 100}, {5.5, 6.8}, {1.2, 3.5}, {15, 35}},
	{{45, 80}, {20, 40}, {80, 150}, {6.0, 7.5}, {2.5, 5.0}, {25, 40}},
}

// Config controls the synthesis. Zero values fall back to the dataset's
// documented defaults: 33334 samples per class, 1% pH noise rows and 3%
// missing values per feature.
type Config struct {
	SamplesPerClass int
	Seed            uint64
	NoiseFraction   float64
	MissingFraction float64
}

// Row is one synthesized soil sample.
type Row struct {
	Features [numFeatures]float64
	Class    int
}

// Generate synthesizes the labelled soil table: per-class uniform feature
// draws, a global shuffle, extra pH noise on a small fraction of rows and
// missing values backfilled with the column mean.
func Generate(cfg Config) []Row {
	if cfg.SamplesPerClass <= 0 {
		cfg.SamplesPerClass = 33334
	}
	if cfg.NoiseFraction == 0 {
		cfg.NoiseFraction = 0.01
	}
	if cfg.MissingFraction == 0 {
		cfg.MissingFraction = 0.03
	}
	src := rand.NewSource(cfg.Seed)
	rng := rand.New(src)

	rows := make([]Row, 0, 3*cfg.SamplesPerClass)
	for class := 0; class < 3; class++ {
		var dists [numFeatures]distuv.Uniform
		for f := 0; f < numFeatures; f++ {
			dists[f] = distuv.Uniform{Min: classRanges[class][f].min, Max: classRanges[class][f].max, Src: src}
		}
		for i := 0; i < cfg.SamplesPerClass; i++ {
			r := Row{Class: class}
			for f := 0; f < numFeatures; f++ {
				r.Features[f] = dists[f].Rand()
			}
			rows = append(rows, r)
		}
	}
	rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

	// Extra pH noise on a small fraction of rows
	noise := distuv.Uniform{Min: -2, Max: 2, Src: src}
	for _, idx := range sampleIndexes(rng, len(rows), cfg.NoiseFraction) {
		rows[idx].Features[3] += noise.Rand()
	}

	// Blank a fraction of each feature, then impute with the column mean
	for f := 0; f < numFeatures; f++ {
		for _, idx := range sampleIndexes(rng, len(rows), cfg.MissingFraction) {
			rows[idx].Features[f] = math.NaN()
		}
	}
	imputeMeans(rows)
	return rows
}

func sampleIndexes(rng *rand.Rand, n int, fraction float64) []int {
	k := int(fraction * float64(n))
	if k > n {
		k = n
	}
	return rng.Perm(n)[:k]
}

func imputeMeans(rows []Row) {
	for f := 0; f < numFeatures; f++ {
		sum := 0.0
		count := 0
		for i := range rows {
			if !math.IsNaN(rows[i].Features[f]) {
				sum += rows[i].Features[f]
				count++
			}
		}
		if count == 0 {
			continue
		}
		mean := sum / float64(count)
		for i := range rows {
			if math.IsNaN(rows[i].Features[f]) {
				rows[i].Features[f] = mean
			}
		}
	}
}

// WriteCSV writes the table as semicolon-delimited UTF-8 text with a
// header row.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	w := csv.NewWriter(f)
	w.Comma = ';'
	header := append(append([]string(nil), Columns...), ClassLabel)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	record := make([]string, numFeatures+1)
	for _, r := range rows {
		for fi, v := range r.Features {
			record[fi] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		record[numFeatures] = strconv.Itoa(r.Class)
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write dataset: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	return f.Close()
}
