package news

import (
	"context"
	"fmt"

	"github.com/duedil-labs/duedil/internal/external/ddg"
	"github.com/duedil-labs/duedil/internal/external/openai"
)

const summarySystemPrompt = "You are a helpful financial assistant."

// OpenAISummarizer condenses snippets through the chat completions
// API. Satisfies Summarizer.
type OpenAISummarizer struct {
	client *openai.Client
}

// NewOpenAISummarizer creates a summarizer backed by an OpenAI client.
func NewOpenAISummarizer(client *openai.Client) *OpenAISummarizer {
	return &OpenAISummarizer{client: client}
}

// Summarize asks the model for a concise risk summary of the snippets.
func (s *OpenAISummarizer) Summarize(ctx context.Context, ticker string, snippets []ddg.Snippet) (string, error) {
	prompt := fmt.Sprintf(
		"You are a financial analyst. Analyze the following news snippets for %s "+
			"regarding litigation, liquidity issues, and bankruptcy risk.\n\n%s\n\n"+
			"Provide a concise summary of the risks.",
		ticker, FormatSnippets(snippets),
	)

	return s.client.Complete(ctx, summarySystemPrompt, prompt)
}
