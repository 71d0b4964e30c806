package pipeline

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

const unknownSource = "unknown"

type retrieveStage struct {
	store DocumentStore
	topK  int
}

func (s *retrieveStage) Name() StageName { return StageRetrieval }

func (s *retrieveStage) Run(ctx context.Context, state *State) error {
	k := s.topK
	if k <= 0 {
		k = 5
	}
	chunks, err := s.store.Query(ctx, state.Question, k)
	if err != nil {
		return &RetrievalError{Question: state.Question, Err: err}
	}
	state.Context = make([]string, 0, len(chunks))
	state.Documents = make([]string, 0, len(chunks))
	for _, ch := range chunks {
		source := ch.Source
		if source == "" {
			source = unknownSource
		}
		state.Context = append(state.Context, ch.Content)
		state.Documents = append(state.Documents, source)
	}
	state.phase = PhaseRetrieved
	return nil
}

type answerStage struct {
	llm LLM
}

func (s *answerStage) Name() StageName { return StageAnswer }

func (s *answerStage) Run(ctx context.Context, state *State) error {
	prompt := renderAnswerPrompt(strings.Join(state.Context, "\n\n"), state.Question)
	answer, err := s.llm.Invoke(ctx, prompt)
	if err != nil {
		return &GenerationError{Stage: StageAnswer, Question: state.Question, Err: err}
	}
	state.Answer = answer
	state.phase = PhaseAnswered
	return nil
}

type summaryStage struct {
	llm LLM
}

func (s *summaryStage) Name() StageName { return StageSummary }

func (s *summaryStage) Run(ctx context.Context, state *State) error {
	parts := make([]string, 0, len(state.Context)+1)
	parts = append(parts, state.Context...)
	if state.Answer != "" {
		parts = append(parts, state.Answer)
	}
	content, err := s.llm.Invoke(ctx, renderSummaryPrompt(strings.Join(parts, "\n\n")))
	if err != nil {
		return &GenerationError{Stage: StageSummary, Question: state.Question, Err: err}
	}
	state.Summary = &Section{
		Content:  content,
		Sources:  append([]string(nil), state.Documents...),
		Question: state.Question,
	}
	state.phase = PhaseSummarized
	return nil
}

type translateStage struct {
	llm LLM
	log *logrus.Logger
}

func (s *translateStage) Name() StageName { return StageTranslate }

func (s *translateStage) Run(ctx context.Context, state *State) error {
	if state.Summary == nil {
		// Nothing to translate; the run still terminates normally.
		s.log.WithField("question", state.Question).Warn("no summary available, skipping translation")
		state.phase = PhaseTranslated
		return nil
	}
	content, err := s.llm.Invoke(ctx, renderChineseSummaryPrompt(state.Summary.Content))
	if err != nil {
		return &GenerationError{Stage: StageTranslate, Question: state.Question, Err: err}
	}
	state.Translated = &Section{
		Content:  content,
		Sources:  append([]string(nil), state.Summary.Sources...),
		Question: state.Question,
	}
	state.phase = PhaseTranslated
	return nil
}
