package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	results map[string][]RetrievedChunk
	errFor  map[string]error
	queries []string
}

func (s *stubStore) Query(ctx context.Context, text string, k int) ([]RetrievedChunk, error) {
	s.queries = append(s.queries, text)
	if err, ok := s.errFor[text]; ok {
		return nil, err
	}
	return s.results[text], nil
}

type scriptLLM struct {
	reply func(prompt string) (string, error)
	calls int
}

func (l *scriptLLM) Invoke(ctx context.Context, prompt string) (string, error) {
	l.calls++
	return l.reply(prompt)
}

func echoLLM() *scriptLLM {
	n := 0
	return &scriptLLM{reply: func(prompt string) (string, error) {
		n++
		return fmt.Sprintf("generated %d", n), nil
	}}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&strings.Builder{})
	return log
}

func TestPipelineHappyPath(t *testing.T) {
	store := &stubStore{results: map[string][]RetrievedChunk{
		"What is AI?": {
			{Content: "AI is the study of intelligent agents.", Source: "ai.md"},
			{Content: "Qubits enable superposition.", Source: "quantum.md"},
		},
	}}
	llm := echoLLM()

	state := NewState("What is AI?")
	p := New(store, llm, 5, quietLogger())
	require.NoError(t, p.Execute(context.Background(), state))

	assert.Equal(t, PhaseEnd, state.Phase())
	assert.Equal(t, []string{"ai.md", "quantum.md"}, state.Documents)
	assert.NotEmpty(t, state.Answer)
	require.NotNil(t, state.Summary)
	assert.Equal(t, "What is AI?", state.Summary.Question)
	assert.Equal(t, []string{"ai.md", "quantum.md"}, state.Summary.Sources)
	require.NotNil(t, state.Translated)
	assert.Equal(t, state.Summary.Sources, state.Translated.Sources)
	// retrieve does not call the LLM; the other three stages do
	assert.Equal(t, 3, llm.calls)
}

func TestAnswerPromptCarriesContextAndQuestion(t *testing.T) {
	store := &stubStore{results: map[string][]RetrievedChunk{
		"Q": {{Content: "chunk one", Source: "a.md"}, {Content: "chunk two", Source: "a.md"}},
	}}
	var firstPrompt string
	llm := &scriptLLM{reply: func(prompt string) (string, error) {
		if firstPrompt == "" {
			firstPrompt = prompt
		}
		return "ok", nil
	}}

	state := NewState("Q")
	require.NoError(t, New(store, llm, 5, quietLogger()).Execute(context.Background(), state))

	assert.Contains(t, firstPrompt, "chunk one\n\nchunk two")
	assert.Contains(t, firstPrompt, "Question: Q")
}

func TestEmptyRetrievalStillGenerates(t *testing.T) {
	store := &stubStore{results: map[string][]RetrievedChunk{}}
	llm := echoLLM()

	state := NewState("anything")
	require.NoError(t, New(store, llm, 5, quietLogger()).Execute(context.Background(), state))

	assert.Equal(t, PhaseEnd, state.Phase())
	assert.Empty(t, state.Documents)
	require.NotNil(t, state.Summary)
	assert.Empty(t, state.Summary.Sources)
	require.NotNil(t, state.Translated)
}

func TestUnknownSourceFallback(t *testing.T) {
	store := &stubStore{results: map[string][]RetrievedChunk{
		"Q": {{Content: "orphan chunk"}},
	}}
	state := NewState("Q")
	require.NoError(t, New(store, echoLLM(), 5, quietLogger()).Execute(context.Background(), state))
	assert.Equal(t, []string{"unknown"}, state.Documents)
}

func TestTranslationPassThroughWithoutSummary(t *testing.T) {
	llm := &scriptLLM{reply: func(string) (string, error) {
		return "", errors.New("must not be called")
	}}
	stage := &translateStage{llm: llm, log: quietLogger()}

	state := NewState("Q")
	require.NoError(t, stage.Run(context.Background(), state))

	assert.Nil(t, state.Translated)
	assert.Equal(t, PhaseTranslated, state.Phase())
	assert.Zero(t, llm.calls)
}

func TestOrchestratorRunsEveryQuestion(t *testing.T) {
	questions := []string{"q1", "q2"}
	store := &stubStore{results: map[string][]RetrievedChunk{
		"q1": {{Content: "alpha", Source: "A.md"}},
		"q2": {{Content: "beta", Source: "A.md"}},
	}}

	orch := NewOrchestrator(store, echoLLM(), questions, 5, quietLogger())
	results, err := orch.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, questions, store.queries)
	for i, state := range results {
		assert.Equal(t, questions[i], state.Question)
		assert.Equal(t, PhaseEnd, state.Phase())
		require.NotNil(t, state.Summary)
		assert.Equal(t, []string{"A.md"}, state.Summary.Sources)
	}
}

func TestOrchestratorSkipsFailedRetrieval(t *testing.T) {
	store := &stubStore{
		results: map[string][]RetrievedChunk{
			"good": {{Content: "alpha", Source: "A.md"}},
			"also": {{Content: "beta", Source: "B.md"}},
		},
		errFor: map[string]error{"broken": errors.New("store unreachable")},
	}

	orch := NewOrchestrator(store, echoLLM(), []string{"good", "broken", "also"}, 5, quietLogger())
	results, err := orch.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, []string{"A.md"}, results[0].Summary.Sources)
	// the failed question still reaches the end, with no context
	assert.Equal(t, PhaseEnd, results[1].Phase())
	assert.Empty(t, results[1].Documents)
	require.NotNil(t, results[1].Summary)
	assert.Empty(t, results[1].Summary.Sources)
	assert.Equal(t, []string{"B.md"}, results[2].Summary.Sources)
}

func TestOrchestratorAbortsOnGenerationFailure(t *testing.T) {
	store := &stubStore{results: map[string][]RetrievedChunk{
		"q1": {{Content: "alpha", Source: "A.md"}},
	}}
	calls := 0
	llm := &scriptLLM{reply: func(string) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("rate limited")
		}
		return "ok", nil
	}}

	orch := NewOrchestrator(store, llm, []string{"q1", "q2"}, 5, quietLogger())
	results, err := orch.Run(context.Background())

	require.Error(t, err)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, StageSummary, genErr.Stage)
	assert.Equal(t, "q1", genErr.Question)
	assert.Nil(t, results)
	// second question never started
	assert.Equal(t, []string{"q1"}, store.queries)
}

func TestRetrievalErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	store := &stubStore{errFor: map[string]error{"q": cause}}
	stage := &retrieveStage{store: store, topK: 5}

	err := stage.Run(context.Background(), NewState("q"))
	require.Error(t, err)
	var retErr *RetrievalError
	require.ErrorAs(t, err, &retErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "q", retErr.Question)
}
