// Package assistant provides the AI chat completion backends for the
// finance assistant endpoint. Adapters exist for Claude (Anthropic) and
// OpenAI; a fallback chain tries each configured provider in order until one
// produces a usable answer.
package assistant

import "context"

// systemPreamble is the finance-focused guidance prepended to every prompt.
const systemPreamble = `You are StockAI, a helpful financial research assistant.
- Provide balanced, educational analysis for stock-related questions.
- Use clear structure with bullet points and short paragraphs.
- Include key metrics when available (trend overview, catalysts, risks, time horizons).
- Never give guaranteed returns or personalized financial advice.
- Always cite sources for data and claims.
- If you don't know the answer, say "I don't know" instead of making up information.`

// Completer produces a chat completion for a user prompt.
type Completer interface {
	// Complete returns the assistant's answer, or an error when the
	// provider cannot produce one.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}

// buildPrompt combines the system guidance with the user's question.
func buildPrompt(prompt string) string {
	return systemPreamble + "\n\nUser question: " + prompt
}
