// Package pipeline runs the per-question summarization state machine:
// retrieve, answer, summarize, translate-summarize, executed strictly in that
// order, and folds the per-question results into two aggregate documents.
package pipeline

import "context"

// Phase marks how far a State has advanced through the stage sequence.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseRetrieved
	PhaseAnswered
	PhaseSummarized
	PhaseTranslated
	PhaseEnd
)

// Section is one question's summary payload in a single language.
type Section struct {
	Content  string
	Sources  []string
	Question string
}

// State is the mutable record one pipeline run owns exclusively. Fields are
// set once by their stage and never rewound by a later one.
type State struct {
	Question string

	// Context and Documents are parallel: Documents[i] names the source of
	// Context[i], "unknown" when the store has no source for a chunk.
	Context   []string
	Documents []string

	Answer     string
	Summary    *Section
	Translated *Section

	phase Phase
}

// NewState creates a fresh state for one question.
func NewState(question string) *State {
	return &State{Question: question}
}

// Phase returns the stage the state has reached.
func (s *State) Phase() Phase { return s.phase }

// RetrievedChunk is one retrieval result: chunk text plus the identifier of
// the document it came from.
type RetrievedChunk struct {
	Content string
	Source  string
}

// DocumentStore is the retrieval port. An empty result list is valid; only an
// unreachable or broken store is an error.
type DocumentStore interface {
	Query(ctx context.Context, text string, k int) ([]RetrievedChunk, error)
}

// LLM is the generation port, one instance per active provider.
type LLM interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}
