package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyText(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("   ", 3)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestSummarizeShortTextReturnedWhole(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("One sentence only.", 5)
	require.NoError(t, err)
	assert.Equal(t, "One sentence only.", out)
}

func TestSummarizeSelectsFrequentTopics(t *testing.T) {
	text := "Quantum computing uses qubits. Qubits enable quantum superposition. " +
		"The weather was mild yesterday. Quantum entanglement links qubits together. " +
		"Lunch was served at noon."
	s := NewFrequencySummarizer()
	out, err := s.Summarize(text, 2)
	require.NoError(t, err)

	assert.Contains(t, strings.ToLower(out), "qubits")
	assert.NotContains(t, out, "Lunch was served")
	// at most the requested number of sentences survive
	assert.LessOrEqual(t, strings.Count(out, "."), 2)
}

func TestSummarizePreservesOriginalOrder(t *testing.T) {
	text := "Alpha topic repeats alpha words alpha. Unrelated filler line here. Alpha appears again with alpha force."
	s := NewFrequencySummarizer()
	out, err := s.Summarize(text, 2)
	require.NoError(t, err)

	first := strings.Index(out, "Alpha topic")
	second := strings.Index(out, "Alpha appears")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
}

func TestSummarizeDefaultsSentenceCount(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("A. B. C. D. E. F. G.", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
