package pipeline

import "strings"

// Prompt templates use a single %s/%q-free substitution scheme: the literal
// markers below are replaced with state fields, nothing is conditional.

const answerPromptTemplate = `You are an AI assistant tasked with analyzing academic documents.

Based on the following context, please answer the question thoroughly.

Context: {context}

Question: {question}

Answer:`

const summaryPromptTemplate = `You are an AI assistant tasked with creating comprehensive summaries of academic documents.

Based on the following information extracted from multiple documents, create a detailed summary that includes:
1. Key points from each document
2. Important concepts and ideas
3. Connections and relationships between the documents
4. Any significant findings or conclusions

Information:
{context}

Please format your response as a well-structured markdown document with appropriate headings, subheadings, and bullet points.`

const chineseSummaryPromptTemplate = `You are an AI assistant tasked with creating comprehensive summaries of academic documents in Chinese.

Based on the following information extracted from multiple documents, create a detailed summary in Chinese (Simplified Chinese) that includes:
1. Key points from each document (每份文档的要点)
2. Important concepts and ideas (重要概念和想法)
3. Connections and relationships between the documents (文档之间的联系和关系)
4. Any significant findings or conclusions (重要发现或结论)

Information:
{context}

Please format your response as a well-structured markdown document with appropriate headings, subheadings, and bullet points in Chinese.`

func renderAnswerPrompt(contextText, question string) string {
	out := strings.ReplaceAll(answerPromptTemplate, "{context}", contextText)
	return strings.ReplaceAll(out, "{question}", question)
}

func renderSummaryPrompt(contextText string) string {
	return strings.ReplaceAll(summaryPromptTemplate, "{context}", contextText)
}

func renderChineseSummaryPrompt(contextText string) string {
	return strings.ReplaceAll(chineseSummaryPromptTemplate, "{context}", contextText)
}
