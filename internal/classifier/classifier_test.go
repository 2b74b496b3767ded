package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArtifact is a hand-sized weight set: two real vocabulary words whose
// embeddings are the axis vectors, and a single softmax layer that scales
// the pooled vector so the predicted class is confident.
func testArtifact() Artifact {
	return Artifact{
		Vocab:    map[string]int{"seco": 2, "umido": 3},
		OOVIndex: 1,
		MaxLen:   1,
		Labels:   []string{"irrigacao", "drenagem"},
		Embedding: [][]float64{
			{0, 0}, // padding
			{0, 0}, // OOV
			{1, 0},
			{0, 1},
		},
		Layers: []Layer{
			{
				Weights:    [][]float64{{5, 0}, {0, 5}},
				Bias:       []float64{0, 0},
				Activation: "softmax",
			},
		},
	}
}

func TestClassify(t *testing.T) {
	m, err := NewModel(testArtifact())
	require.NoError(t, err)

	label, conf, err := m.Classify("seco")
	require.NoError(t, err)
	assert.Equal(t, "irrigacao", label)
	// softmax([5, 0]) for the first class
	assert.InDelta(t, 0.9933, conf, 1e-4)

	label, conf, err = m.Classify("umido")
	require.NoError(t, err)
	assert.Equal(t, "drenagem", label)
	assert.InDelta(t, 0.9933, conf, 1e-4)
}

func TestClassifyUnknownWordsAreUncertain(t *testing.T) {
	m, err := NewModel(testArtifact())
	require.NoError(t, err)

	_, conf, err := m.Classify("palavra desconhecida")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, conf, 1e-9)
}

func TestClassifyDeterministic(t *testing.T) {
	m, err := NewModel(testArtifact())
	require.NoError(t, err)
	label1, conf1, err := m.Classify("seco")
	require.NoError(t, err)
	label2, conf2, err := m.Classify("seco")
	require.NoError(t, err)
	assert.Equal(t, label1, label2)
	assert.Equal(t, conf1, conf2)
}

func TestMeanPoolingIncludesPadding(t *testing.T) {
	// No dense stack: the pooled vector is the output, so padding rows
	// dilute the single real token by MaxLen.
	art := testArtifact()
	art.MaxLen = 2
	art.Layers = nil
	m, err := NewModel(art)
	require.NoError(t, err)

	probs, err := m.forward("seco")
	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.InDelta(t, 0.5, probs[0], 1e-9)
	assert.InDelta(t, 0.0, probs[1], 1e-9)
}

func TestClassifyTruncatesToMaxLen(t *testing.T) {
	m, err := NewModel(testArtifact())
	require.NoError(t, err)
	// MaxLen is 1; only the first word counts
	label, _, err := m.Classify("seco umido umido")
	require.NoError(t, err)
	assert.Equal(t, "irrigacao", label)
}

func TestNewModelValidation(t *testing.T) {
	t.Run("oov_out_of_range", func(t *testing.T) {
		art := testArtifact()
		art.OOVIndex = 99
		_, err := NewModel(art)
		assert.Error(t, err)
	})
	t.Run("layer_shape_mismatch", func(t *testing.T) {
		art := testArtifact()
		art.Layers[0].Weights = [][]float64{{5, 0}}
		_, err := NewModel(art)
		assert.Error(t, err)
	})
	t.Run("final_width_vs_labels", func(t *testing.T) {
		art := testArtifact()
		art.Labels = []string{"irrigacao", "drenagem", "adubacao"}
		_, err := NewModel(art)
		assert.Error(t, err)
	})
	t.Run("empty_artifact", func(t *testing.T) {
		_, err := NewModel(Artifact{})
		assert.Error(t, err)
	})
}

func TestMatchRatio(t *testing.T) {
	assert.Equal(t, 1.0, MatchRatio("solo seco", "solo seco"))
	assert.Equal(t, 1.0, MatchRatio("", ""))
	assert.Equal(t, 0.0, MatchRatio("abc", "xyz"))
	assert.InDelta(t, 0.75, MatchRatio("abcd", "bcde"), 1e-9)

	// a longer shared prefix ranks higher
	closer := MatchRatio("meu solo esta seco", "meu solo esta umido")
	farther := MatchRatio("meu solo esta seco", "como adubar a horta")
	assert.Greater(t, closer, farther)
}
