package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"meu solo esta seco",
	"como corrigir solo acido",
	"adubacao nitrogenada para horta",
}

func TestPrepareAndEmbed(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))
	assert.Greater(t, e.Dimension(), 0)

	vec, err := e.Embed("meu solo esta seco")
	require.NoError(t, err)
	require.Len(t, vec, e.Dimension())

	// produced vectors are L2-normalized
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestEmbedUnknownTokens(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))
	vec, err := e.Embed("palavras totalmente desconhecidas")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbedUnprepared(t *testing.T) {
	_, err := NewEmbedder().Embed("solo seco")
	assert.Error(t, err)
}

func TestPrepareEmptyCorpus(t *testing.T) {
	assert.Error(t, NewEmbedder().Prepare(nil))
}

func TestStateRoundTrip(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))
	state, err := e.MarshalBinary()
	require.NoError(t, err)

	restored := NewEmbedder()
	require.NoError(t, restored.UnmarshalBinary(state))
	assert.Equal(t, e.Dimension(), restored.Dimension())

	want, err := e.Embed("corrigir solo acido")
	require.NoError(t, err)
	got, err := restored.Embed("corrigir solo acido")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMarshalUnprepared(t *testing.T) {
	_, err := NewEmbedder().MarshalBinary()
	assert.Error(t, err)
}
