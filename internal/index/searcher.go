package index

import (
	"context"
	"fmt"
	"time"

	"docsum/internal/config"
	"docsum/internal/domain"
	"docsum/internal/embedding"
	"docsum/internal/embedding/openai"
	"docsum/internal/embedding/tfidf"
	"docsum/internal/pipeline"
	"docsum/internal/vectorstore"
	"docsum/internal/vectorstore/memory"
	"docsum/internal/vectorstore/qdrant"
)

// Searcher answers similarity queries against a previously built index. It
// satisfies the pipeline's retrieval port and backs the interactive query
// view.
type Searcher struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
}

// OpenSearcher restores the persisted index from disk and reconnects the
// configured vector store.
func OpenSearcher(cfg *config.AppConfig) (*Searcher, error) {
	pi, err := loadPersisted(cfg.IndexFile())
	if err != nil {
		return nil, err
	}

	var embedder embedding.Embedder
	switch pi.Embedder.Type {
	case "tfidf":
		te := tfidf.NewEmbedder()
		if err := te.Import(pi.Embedder.TFIDF); err != nil {
			return nil, fmt.Errorf("restore embedder state: %w", err)
		}
		embedder = te
	case "openai":
		oc := cfg.Embedder.OpenAI
		if oc == nil {
			oc = &config.OpenAIEmbedderConfig{APIKeyEnv: "OPENAI_API_KEY"}
		}
		embedder, err = openai.NewClient(openai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("index built with unknown embedder %q", pi.Embedder.Type)
	}

	var store vectorstore.Storage
	switch pi.Store {
	case "", "memory":
		ms := memory.NewStorage()
		if err := ms.Init(pi.Dimension); err != nil {
			return nil, err
		}
		if err := ms.Upsert(pi.Chunks, pi.Vectors); err != nil {
			return nil, fmt.Errorf("restore vectors: %w", err)
		}
		store = ms
	case "qdrant":
		qc := cfg.VectorStore.Qdrant
		if qc == nil {
			return nil, fmt.Errorf("index uses qdrant but vector_store.qdrant settings missing")
		}
		store = qdrant.NewStorage(qdrant.Config{
			URL:        qc.URL,
			APIKey:     qc.APIKey,
			Collection: qc.Collection,
			Timeout:    time.Duration(qc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("index built with unknown store %q", pi.Store)
	}

	return &Searcher{embedder: embedder, store: store}, nil
}

// NewSearcher wraps an already prepared embedder and loaded store.
func NewSearcher(embedder embedding.Embedder, store vectorstore.Storage) *Searcher {
	return &Searcher{embedder: embedder, store: store}
}

// Search returns the topK most similar chunks with their scores.
func (s *Searcher) Search(text string, topK int) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return s.store.Search(vec, topK)
}

// Query implements the pipeline retrieval port.
func (s *Searcher) Query(ctx context.Context, text string, k int) ([]pipeline.RetrievedChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results, err := s.Search(text, k)
	if err != nil {
		return nil, err
	}
	chunks := make([]pipeline.RetrievedChunk, 0, len(results))
	for _, r := range results {
		chunks = append(chunks, pipeline.RetrievedChunk{
			Content: r.Chunk.Text,
			Source:  r.Chunk.Source,
		})
	}
	return chunks, nil
}
