package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summarizedState(question, content string, sources ...string) *State {
	s := NewState(question)
	s.Summary = &Section{Content: content, Sources: sources, Question: question}
	s.Translated = &Section{Content: "中文 " + content, Sources: sources, Question: question}
	return s
}

func TestAggregateEnglishSectionsAndSourceUnion(t *testing.T) {
	results := []*State{
		summarizedState("first question", "first body", "B.md", "A.md"),
		summarizedState("second question", "second body", "A.md"),
	}

	out := AggregateEnglish(results)

	assert.True(t, strings.HasPrefix(out, "# Comprehensive Summary of Documents\n"))
	assert.Contains(t, out, "## Overview\n")
	assert.Contains(t, out, "## Analysis 1: first question")
	assert.Contains(t, out, "## Analysis 2: second question")
	assert.Contains(t, out, "first body")

	// sources deduplicated and sorted
	idx := strings.Index(out, "## Sources")
	require.Greater(t, idx, 0)
	assert.Equal(t, "## Sources\n\n- A.md\n- B.md\n", out[idx:])
}

func TestAggregateSkipsStatesWithoutSections(t *testing.T) {
	full := summarizedState("answered", "body", "A.md")
	bare := NewState("unanswered")

	// Sections keep the number of their question's batch position, so a
	// skipped question leaves a gap instead of renumbering the rest.
	en := AggregateEnglish([]*State{bare, full})
	assert.NotContains(t, en, "## Analysis 1:")
	assert.Contains(t, en, "## Analysis 2: answered")
	assert.NotContains(t, en, "unanswered")

	zh := AggregateChinese([]*State{bare, full})
	assert.NotContains(t, zh, "## 分析 1:")
	assert.Contains(t, zh, "## 分析 2: answered")
	assert.NotContains(t, zh, "unanswered")
}

func TestAggregateChineseLayout(t *testing.T) {
	out := AggregateChinese([]*State{summarizedState("q", "body", "doc.md")})

	assert.True(t, strings.HasPrefix(out, "# 文档综合摘要\n"))
	assert.Contains(t, out, "## 概述\n")
	assert.Contains(t, out, "中文 body")
	assert.Contains(t, out, "## 来源\n\n- doc.md\n")
}

func TestWriteSummaries(t *testing.T) {
	dir := t.TempDir()
	en := filepath.Join(dir, "out", "summary.md")
	zh := filepath.Join(dir, "out", "summary_chinese.md")

	err := WriteSummaries([]*State{summarizedState("q", "body", "x.md")}, en, zh)
	require.NoError(t, err)

	enData, err := os.ReadFile(en)
	require.NoError(t, err)
	assert.Contains(t, string(enData), "## Analysis 1: q")

	zhData, err := os.ReadFile(zh)
	require.NoError(t, err)
	assert.Contains(t, string(zhData), "## 分析 1: q")
}
