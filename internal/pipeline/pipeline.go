package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Stage is one step of the per-question run. A stage reads the fields earlier
// stages wrote, sets its own, and advances the phase.
type Stage interface {
	Name() StageName
	Run(ctx context.Context, state *State) error
}

// Pipeline executes its stages in order against a single State.
type Pipeline struct {
	stages []Stage
	log    *logrus.Logger
}

// New builds the standard four-stage pipeline over the given ports.
func New(store DocumentStore, llm LLM, topK int, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		stages: []Stage{
			&retrieveStage{store: store, topK: topK},
			&answerStage{llm: llm},
			&summaryStage{llm: llm},
			&translateStage{llm: llm, log: log},
		},
		log: log,
	}
}

// Execute runs every stage against state. The first stage error stops the run
// and is returned to the caller; state keeps whatever the completed stages
// wrote.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for _, stage := range p.stages {
		started := time.Now()
		if err := stage.Run(ctx, state); err != nil {
			return err
		}
		p.log.WithFields(logrus.Fields{
			"stage":    string(stage.Name()),
			"question": state.Question,
			"elapsed":  time.Since(started).Round(time.Millisecond).String(),
		}).Debug("stage complete")
	}
	state.phase = PhaseEnd
	return nil
}
