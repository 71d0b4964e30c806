package domain

// Document represents a single Markdown file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Source  string
	Content string
}

// Chunk is a semantically meaningful part of a document used for indexing.
type Chunk struct {
	DocumentID string `json:"document_id"`
	ChunkID    string `json:"chunk_id"`
	Source     string `json:"source"`
	Text       string `json:"text"`
	Index      int    `json:"index"`
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Summarizer produces a brief extractive summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
