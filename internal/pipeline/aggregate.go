package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const englishPreamble = "# Comprehensive Summary of Documents\n\n" +
	"## Overview\n" +
	"This document provides a comprehensive summary of the key points, important concepts, " +
	"and connections between multiple documents on artificial intelligence, quantum computing, " +
	"and climate change.\n\n"

const chinesePreamble = "# 文档综合摘要\n\n" +
	"## 概述\n" +
	"本文档提供了关于人工智能、量子计算和气候变化的多份文档的要点、重要概念和联系的综合摘要。\n\n"

// AggregateEnglish folds the per-question English summaries into one
// markdown document: fixed preamble, one analysis section per question
// numbered by its position in the batch, then the deduplicated source
// union. A question without a summary leaves a gap in the numbering.
func AggregateEnglish(results []*State) string {
	var b strings.Builder
	b.WriteString(englishPreamble)
	sources := map[string]struct{}{}
	for i, state := range results {
		if state.Summary == nil {
			continue
		}
		fmt.Fprintf(&b, "## Analysis %d: %s\n\n%s\n\n", i+1, state.Summary.Question, strings.TrimSpace(state.Summary.Content))
		for _, src := range state.Summary.Sources {
			sources[src] = struct{}{}
		}
	}
	writeSources(&b, "## Sources", sources)
	return b.String()
}

// AggregateChinese does the same for the Chinese sections.
func AggregateChinese(results []*State) string {
	var b strings.Builder
	b.WriteString(chinesePreamble)
	sources := map[string]struct{}{}
	for i, state := range results {
		if state.Translated == nil {
			continue
		}
		fmt.Fprintf(&b, "## 分析 %d: %s\n\n%s\n\n", i+1, state.Translated.Question, strings.TrimSpace(state.Translated.Content))
		for _, src := range state.Translated.Sources {
			sources[src] = struct{}{}
		}
	}
	writeSources(&b, "## 来源", sources)
	return b.String()
}

func writeSources(b *strings.Builder, heading string, set map[string]struct{}) {
	names := make([]string, 0, len(set))
	for src := range set {
		names = append(names, src)
	}
	sort.Strings(names)
	b.WriteString(heading + "\n\n")
	for _, name := range names {
		fmt.Fprintf(b, "- %s\n", name)
	}
}

// WriteSummaries renders both aggregate documents and writes them to disk.
func WriteSummaries(results []*State, englishPath, chinesePath string) error {
	for _, path := range []string{englishPath, chinesePath} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create summary directory: %w", err)
		}
	}
	if err := os.WriteFile(englishPath, []byte(AggregateEnglish(results)), 0o644); err != nil {
		return fmt.Errorf("write english summary: %w", err)
	}
	if err := os.WriteFile(chinesePath, []byte(AggregateChinese(results)), 0o644); err != nil {
		return fmt.Errorf("write chinese summary: %w", err)
	}
	return nil
}
