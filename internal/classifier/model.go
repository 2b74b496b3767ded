package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Artifact is the trained weight set consumed by the classifier backend:
// a tokenizer vocabulary, an embedding table and a stack of dense layers
// ending in softmax. It is produced by an external training pipeline and
// treated as opaque here beyond shape validation.
type Artifact struct {
	Vocab     map[string]int `json:"vocab"`
	OOVIndex  int            `json:"oov_index"`
	MaxLen    int            `json:"max_len"`
	Labels    []string       `json:"labels"`
	Embedding [][]float64    `json:"embedding"`
	Layers    []Layer        `json:"layers"`
}

// Layer is one dense layer: weights are input×output.
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// Model runs the intent-classification forward pass: tokenize, pad,
// embedding lookup, mean pooling over all positions, dense stack, softmax.
type Model struct {
	art       Artifact
	embedding *mat.Dense
	weights   []*mat.Dense
	biases    []*mat.VecDense
}

// LoadModel reads a JSON weights artifact from disk.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load classifier weights: %w", err)
	}
	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("load classifier weights: %w", err)
	}
	return NewModel(art)
}

// NewModel validates the artifact shapes and builds the dense matrices.
func NewModel(art Artifact) (*Model, error) {
	if len(art.Embedding) == 0 || art.MaxLen <= 0 || len(art.Labels) == 0 {
		return nil, errors.New("classifier artifact is incomplete")
	}
	if art.OOVIndex < 0 || art.OOVIndex >= len(art.Embedding) {
		return nil, fmt.Errorf("oov index %d outside embedding table of %d rows", art.OOVIndex, len(art.Embedding))
	}
	embDim := len(art.Embedding[0])
	embedding := mat.NewDense(len(art.Embedding), embDim, nil)
	for i, row := range art.Embedding {
		if len(row) != embDim {
			return nil, fmt.Errorf("embedding row %d has dimension %d, want %d", i, len(row), embDim)
		}
		embedding.SetRow(i, row)
	}

	m := &Model{art: art, embedding: embedding}
	in := embDim
	for li, layer := range art.Layers {
		rows := len(layer.Weights)
		if rows != in {
			return nil, fmt.Errorf("layer %d expects %d inputs, previous layer produces %d", li, rows, in)
		}
		cols := len(layer.Bias)
		w := mat.NewDense(rows, cols, nil)
		for r, row := range layer.Weights {
			if len(row) != cols {
				return nil, fmt.Errorf("layer %d weight row %d has %d columns, want %d", li, r, len(row), cols)
			}
			w.SetRow(r, row)
		}
		m.weights = append(m.weights, w)
		m.biases = append(m.biases, mat.NewVecDense(cols, append([]float64(nil), layer.Bias...)))
		in = cols
	}
	if in != len(art.Labels) {
		return nil, fmt.Errorf("final layer produces %d outputs for %d labels", in, len(art.Labels))
	}
	return m, nil
}

// Classify maps normalized text to the most probable intent label and its
// softmax confidence.
func (m *Model) Classify(text string) (string, float64, error) {
	probs, err := m.forward(text)
	if err != nil {
		return "", 0, err
	}
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return m.art.Labels[best], probs[best], nil
}

func (m *Model) forward(text string) ([]float64, error) {
	ids := m.tokenize(text)
	// Mean pooling over all MaxLen positions, padding included, to match
	// the trained pooling layer.
	embDim := m.embedding.RawMatrix().Cols
	pooled := mat.NewVecDense(embDim, nil)
	for _, id := range ids {
		pooled.AddVec(pooled, m.embedding.RowView(id))
	}
	pooled.ScaleVec(1/float64(m.art.MaxLen), pooled)

	x := pooled
	for li := range m.weights {
		cols := m.biases[li].Len()
		out := mat.NewVecDense(cols, nil)
		out.MulVec(m.weights[li].T(), x)
		out.AddVec(out, m.biases[li])
		switch strings.ToLower(m.art.Layers[li].Activation) {
		case "relu":
			for i := 0; i < cols; i++ {
				if out.AtVec(i) < 0 {
					out.SetVec(i, 0)
				}
			}
		case "softmax":
			softmaxInPlace(out)
		case "", "linear":
		default:
			return nil, fmt.Errorf("unknown activation %q", m.art.Layers[li].Activation)
		}
		x = out
	}
	probs := make([]float64, x.Len())
	for i := range probs {
		probs[i] = x.AtVec(i)
	}
	return probs, nil
}

// tokenize splits on whitespace, maps words through the vocabulary with
// the OOV index for unknowns, and post-pads (or truncates) to MaxLen.
// Index 0 is the padding row of the embedding table.
func (m *Model) tokenize(text string) []int {
	words := strings.Fields(text)
	ids := make([]int, 0, m.art.MaxLen)
	for _, w := range words {
		if len(ids) == m.art.MaxLen {
			break
		}
		id, ok := m.art.Vocab[w]
		if !ok || id <= 0 || id >= len(m.art.Embedding) {
			id = m.art.OOVIndex
		}
		ids = append(ids, id)
	}
	for len(ids) < m.art.MaxLen {
		ids = append(ids, 0)
	}
	return ids
}

func softmaxInPlace(v *mat.VecDense) {
	maxVal := math.Inf(-1)
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) > maxVal {
			maxVal = v.AtVec(i)
		}
	}
	sum := 0.0
	for i := 0; i < v.Len(); i++ {
		e := math.Exp(v.AtVec(i) - maxVal)
		v.SetVec(i, e)
		sum += e
	}
	if sum > 0 {
		v.ScaleVec(1/sum, v)
	}
}
