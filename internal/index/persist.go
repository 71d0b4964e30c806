package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"docsum/internal/config"
	"docsum/internal/domain"
	"docsum/internal/embedding"
	"docsum/internal/embedding/tfidf"
	"docsum/internal/vectorstore"
	"docsum/internal/vectorstore/memory"
)

// persistedIndex is the on-disk form of a built index. For the memory store
// the chunks and vectors are inlined; for qdrant only the embedder state is
// kept, the points live server-side.
type persistedIndex struct {
	Dimension int               `json:"dimension"`
	Store     string            `json:"store"`
	Embedder  persistedEmbedder `json:"embedder"`
	Chunks    []domain.Chunk    `json:"chunks,omitempty"`
	Vectors   [][]float64       `json:"vectors,omitempty"`
}

type persistedEmbedder struct {
	Type  string       `json:"type"`
	TFIDF *tfidf.State `json:"tfidf,omitempty"`
}

func persist(cfg *config.AppConfig, embedder embedding.Embedder, store vectorstore.Storage) error {
	pi := persistedIndex{
		Dimension: embedder.Dimension(),
		Store:     storeType(cfg),
		Embedder:  persistedEmbedder{Type: embedder.Name()},
	}
	if te, ok := embedder.(*tfidf.Embedder); ok {
		st, err := te.Export()
		if err != nil {
			return fmt.Errorf("export embedder state: %w", err)
		}
		pi.Embedder.TFIDF = st
	}
	// Only the memory store needs its contents inlined; qdrant keeps its
	// points server-side.
	if ms, ok := store.(*memory.Storage); ok {
		pi.Chunks, pi.Vectors = ms.Snapshot()
	}

	path := cfg.IndexFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(&pi)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

func loadPersisted(path string) (*persistedIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("index not found at %s, run index first", path)
		}
		return nil, err
	}
	var pi persistedIndex
	if err := json.Unmarshal(data, &pi); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", path, err)
	}
	return &pi, nil
}

func storeType(cfg *config.AppConfig) string {
	if cfg.VectorStore.Type == "" {
		return "memory"
	}
	return cfg.VectorStore.Type
}
