package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsum/internal/domain"
)

func chunk(id, source string) domain.Chunk {
	return domain.Chunk{DocumentID: "doc", ChunkID: id, Source: source, Text: "text " + id}
}

func TestInitRejectsInvalidDimension(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(0))
	assert.Error(t, s.Init(-3))
}

func TestUpsertValidatesShapes(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))

	err := s.Upsert([]domain.Chunk{chunk("a", "x.md")}, nil)
	assert.Error(t, err)

	err = s.Upsert([]domain.Chunk{chunk("a", "x.md")}, [][]float64{{1, 0, 0}})
	assert.Error(t, err)
}

func TestSearchRanksByCosine(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{chunk("a", "a.md"), chunk("b", "b.md"), chunk("c", "c.md")},
		[][]float64{{1, 0}, {0, 1}, {0.6, 0.8}},
	))

	results, err := s.Search([]float64{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Chunk.ChunkID)
	assert.Equal(t, "c", results[1].Chunk.ChunkID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{chunk("first", "a.md"), chunk("second", "a.md")},
		[][]float64{{0, 1}, {0, 1}},
	))

	for i := 0; i < 5; i++ {
		results, err := s.Search([]float64{0, 1}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "first", results[0].Chunk.ChunkID)
		assert.Equal(t, "second", results[1].Chunk.ChunkID)
	}
}

func TestSearchTopKClamped(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert([]domain.Chunk{chunk("a", "a.md")}, [][]float64{{1}}))

	results, err := s.Search([]float64{1}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestClearEmptiesStore(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert([]domain.Chunk{chunk("a", "a.md")}, [][]float64{{1}}))
	require.NoError(t, s.Clear())

	results, err := s.Search([]float64{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSnapshotCopiesState(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(1))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{chunk("a", "a.md"), chunk("b", "b.md")},
		[][]float64{{1}, {0.5}},
	))

	chunks, vectors := s.Snapshot()
	require.Len(t, chunks, 2)
	require.Len(t, vectors, 2)
	assert.Equal(t, "a", chunks[0].ChunkID)
	assert.Equal(t, []float64{0.5}, vectors[1])

	// mutating the snapshot must not touch the store
	chunks[0].ChunkID = "mutated"
	results, err := s.Search([]float64{1}, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", results[0].Chunk.ChunkID)
}
