// Package index builds the searchable chunk index over the converted
// markdown corpus and reopens it in later runs. The embedder state and, for
// the in-memory store, the vectors themselves are persisted as JSON under the
// vectordb directory.
package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docsum/internal/chunker"
	"docsum/internal/config"
	"docsum/internal/domain"
	"docsum/internal/embedding"
	"docsum/internal/embedding/openai"
	"docsum/internal/embedding/tfidf"
	"docsum/internal/summarizer"
	"docsum/internal/vectorstore"
	"docsum/internal/vectorstore/memory"
	"docsum/internal/vectorstore/qdrant"
)

// Stats reports what an index build produced.
type Stats struct {
	Documents int
	Chunks    int
	Dimension int
}

// Build reads every markdown file under the configured markdown directory,
// chunks and embeds it, loads the vectors into the configured store, and
// persists the index for later runs.
func Build(cfg *config.AppConfig, log *logrus.Logger) (*Stats, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	docs, err := loadDocuments(cfg.Paths.Markdown)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no markdown documents found in %s, run convert first", cfg.Paths.Markdown)
	}

	ch := chunker.NewMarkdownChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	var chunks []domain.Chunk
	for _, doc := range docs {
		cs, err := ch.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", doc.Source, err)
		}
		log.WithFields(logrus.Fields{"source": doc.Source, "chunks": len(cs)}).Info("chunked document")
		chunks = append(chunks, cs...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("documents in %s produced no chunks", cfg.Paths.Markdown)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	corpus := make([]string, len(chunks))
	for i, c := range chunks {
		corpus[i] = c.Text
	}
	if err := embedder.Prepare(corpus); err != nil {
		return nil, fmt.Errorf("prepare embedder: %w", err)
	}

	vectors := make([][]float64, len(chunks))
	for i, c := range chunks {
		vec, err := embedder.Embed(c.Text)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d of %s: %w", c.Index, c.Source, err)
		}
		vectors[i] = vec
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Init(embedder.Dimension()); err != nil {
		return nil, fmt.Errorf("init vector store: %w", err)
	}
	if err := store.Upsert(chunks, vectors); err != nil {
		return nil, fmt.Errorf("upsert vectors: %w", err)
	}

	if err := persist(cfg, embedder, store); err != nil {
		return nil, err
	}

	logCorpusPreview(log, docs, cfg.Pipeline.PreviewSentences)

	return &Stats{Documents: len(docs), Chunks: len(chunks), Dimension: embedder.Dimension()}, nil
}

// logCorpusPreview logs a short extractive summary of each indexed document
// so a dry run shows what went in without spending LLM calls.
func logCorpusPreview(log *logrus.Logger, docs []domain.Document, sentences int) {
	fs := summarizer.NewFrequencySummarizer()
	for _, doc := range docs {
		preview, err := fs.Summarize(doc.Content, sentences)
		if err != nil || preview == "" {
			continue
		}
		if len(preview) > 300 {
			preview = preview[:300] + "..."
		}
		log.WithField("source", doc.Source).Infof("indexed: %s", preview)
	}
}

func loadDocuments(dir string) ([]domain.Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	docs := make([]domain.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		content := strings.TrimSpace(string(data))
		if content == "" {
			continue
		}
		docs = append(docs, domain.Document{
			ID:      uuid.New().String(),
			Path:    path,
			Source:  filepath.Base(path),
			Content: content,
		})
	}
	return docs, nil
}

func newEmbedder(cfg *config.AppConfig) (embedding.Embedder, error) {
	switch cfg.Embedder.Type {
	case "", "tfidf":
		return tfidf.NewEmbedder(), nil
	case "openai":
		oc := cfg.Embedder.OpenAI
		if oc == nil {
			oc = &config.OpenAIEmbedderConfig{}
		}
		return openai.NewClient(openai.Config{
			BaseURL:   oc.BaseURL,
			APIKeyEnv: oc.APIKeyEnv,
			Model:     oc.Model,
			Timeout:   time.Duration(oc.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}
}

func newStorage(cfg *config.AppConfig) (vectorstore.Storage, error) {
	switch cfg.VectorStore.Type {
	case "", "memory":
		return memory.NewStorage(), nil
	case "qdrant":
		qc := cfg.VectorStore.Qdrant
		if qc == nil {
			return nil, fmt.Errorf("vector_store.qdrant settings missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        qc.URL,
			APIKey:     qc.APIKey,
			Collection: qc.Collection,
			Timeout:    time.Duration(qc.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}
}
