package pipeline

import "fmt"

// StageName identifies one of the pipeline stages in logs and errors.
type StageName string

const (
	StageRetrieval StageName = "retrieval"
	StageAnswer    StageName = "answer"
	StageSummary   StageName = "summary"
	StageTranslate StageName = "translation"
)

// RetrievalError reports a store failure for one question. The orchestrator
// skips that question's contribution and continues the batch.
type RetrievalError struct {
	Question string
	Err      error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed for question %q: %v", e.Question, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError reports a failed LLM call, tagged with the stage that made
// it. It aborts the whole batch.
type GenerationError struct {
	Stage    StageName
	Question string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed for question %q: %v", e.Stage, e.Question, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
