package pipeline

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// Orchestrator runs the pipeline once per question, sequentially, and
// collects the terminal states.
//
// A retrieval failure only costs that question its context: the run still
// reaches the end with empty retrieval fields. A generation failure aborts
// the whole batch, since a partial bilingual summary is worse than none.
type Orchestrator struct {
	pipeline  *Pipeline
	questions []string
	log       *logrus.Logger
}

func NewOrchestrator(store DocumentStore, llm LLM, questions []string, topK int, log *logrus.Logger) *Orchestrator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Orchestrator{
		pipeline:  New(store, llm, topK, log),
		questions: questions,
		log:       log,
	}
}

// Run executes the pipeline for every question and returns one terminal
// state per question, in question order.
func (o *Orchestrator) Run(ctx context.Context) ([]*State, error) {
	results := make([]*State, 0, len(o.questions))
	for i, question := range o.questions {
		o.log.WithFields(logrus.Fields{
			"question": question,
			"index":    i + 1,
			"total":    len(o.questions),
		}).Info("processing question")

		state := NewState(question)
		err := o.pipeline.Execute(ctx, state)
		if err != nil {
			var retErr *RetrievalError
			if errors.As(err, &retErr) {
				o.log.WithError(retErr.Err).WithField("question", question).
					Error("retrieval failed, continuing without context")
				// Rerun generation with the empty context the failed
				// retrieval left behind.
				state.Context = nil
				state.Documents = nil
				if err := o.resumeAfterRetrieval(ctx, state); err != nil {
					return nil, err
				}
				results = append(results, state)
				continue
			}
			return nil, err
		}
		results = append(results, state)
	}
	return results, nil
}

// resumeAfterRetrieval drives the generation stages for a state whose
// retrieval failed, so the batch still yields a terminal state for it.
func (o *Orchestrator) resumeAfterRetrieval(ctx context.Context, state *State) error {
	state.phase = PhaseRetrieved
	for _, stage := range o.pipeline.stages[1:] {
		if err := stage.Run(ctx, state); err != nil {
			return err
		}
	}
	state.phase = PhaseEnd
	return nil
}
