package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"artificial intelligence studies intelligent agents",
	"quantum computing uses qubits and superposition",
	"climate change raises global temperatures",
}

func TestPrepareEmptyCorpusFails(t *testing.T) {
	e := NewEmbedder()
	assert.Error(t, e.Prepare(nil))
}

func TestEmbedBeforePrepareFails(t *testing.T) {
	e := NewEmbedder()
	_, err := e.Embed("anything")
	assert.Error(t, err)
}

func TestEmbedProducesNormalizedVectors(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))
	require.Greater(t, e.Dimension(), 0)

	vec, err := e.Embed("quantum computing and qubits")
	require.NoError(t, err)
	require.Len(t, vec, e.Dimension())

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestEmbedUnknownVocabularyIsZero(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))

	vec, err := e.Embed("completely unrelated words here")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestSimilarTextScoresHigher(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))

	query, err := e.Embed("quantum qubits")
	require.NoError(t, err)

	quantum, err := e.Embed(corpus[1])
	require.NoError(t, err)
	climate, err := e.Embed(corpus[2])
	require.NoError(t, err)

	assert.Greater(t, dot(query, quantum), dot(query, climate))
}

func TestExportImportRoundTrip(t *testing.T) {
	original := NewEmbedder()
	require.NoError(t, original.Prepare(corpus))

	state, err := original.Export()
	require.NoError(t, err)
	require.Len(t, state.Terms, original.Dimension())
	require.Len(t, state.IDF, original.Dimension())

	restored := NewEmbedder()
	require.NoError(t, restored.Import(state))
	assert.Equal(t, original.Dimension(), restored.Dimension())

	query := "intelligent climate qubits"
	want, err := original.Embed(query)
	require.NoError(t, err)
	got, err := restored.Embed(query)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExportUnpreparedFails(t *testing.T) {
	_, err := NewEmbedder().Export()
	assert.Error(t, err)
}

func TestImportRejectsBadState(t *testing.T) {
	e := NewEmbedder()
	assert.Error(t, e.Import(nil))
	assert.Error(t, e.Import(&State{}))
	assert.Error(t, e.Import(&State{Terms: []string{"a", "b"}, IDF: []float64{1}}))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
