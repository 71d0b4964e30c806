package chunker

import (
	"strings"

	"github.com/google/uuid"

	"docsum/internal/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// MarkdownChunker splits Markdown documents into fixed-size chunks with
// overlap, preferring to cut at paragraph breaks so headings and tables stay
// intact.
type MarkdownChunker struct {
	chunkSize int
	overlap   int
}

func NewMarkdownChunker(chunkSize, overlap int) *MarkdownChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &MarkdownChunker{chunkSize: chunkSize, overlap: overlap}
}

func (c *MarkdownChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	content := strings.TrimSpace(document.Content)
	if content == "" {
		return nil, nil
	}
	var chunks []domain.Chunk
	start := 0
	idx := 0
	for start < len(content) {
		end := start + c.chunkSize
		if end >= len(content) {
			end = len(content)
		} else {
			end = c.cutAt(content, start, end)
		}
		text := strings.TrimSpace(content[start:end])
		if text != "" {
			chunks = append(chunks, domain.Chunk{
				DocumentID: document.ID,
				ChunkID:    uuid.New().String(),
				Source:     document.Source,
				Text:       text,
				Index:      idx,
			})
			idx++
		}
		if end == len(content) {
			break
		}
		// A paragraph cut can land closer to start than the overlap reaches;
		// the window must still move forward.
		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks, nil
}

// cutAt moves the cut point back to the last paragraph break in the second
// half of the window, falling back to the last newline, then to the raw
// boundary.
func (c *MarkdownChunker) cutAt(content string, start, end int) int {
	window := content[start:end]
	half := len(window) / 2
	if i := strings.LastIndex(window, "\n\n"); i > half {
		return start + i
	}
	if i := strings.LastIndex(window, "\n"); i > half {
		return start + i
	}
	return end
}
