package retrieval

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Cosine returns the cosine similarity between two vectors. Vectors of
// mismatched lengths are not comparable and yield 0, as does a zero-norm
// vector.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	na := math.Sqrt(floats.Dot(a, a))
	nb := math.Sqrt(floats.Dot(b, b))
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// Retrieve computes the cosine similarity between the query vector and
// every corpus vector and returns the index of the maximum along with that
// maximum value. Ties keep the first index encountered, so results are
// deterministic for a fixed corpus order. An empty corpus yields (-1, 0).
func Retrieve(query []float64, corpus [][]float64) (int, float64) {
	best := -1
	bestScore := 0.0
	for i, v := range corpus {
		score := Cosine(query, v)
		if best == -1 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best == -1 {
		return -1, 0
	}
	return best, bestScore
}
