// Package llm adds optional natural-language summaries to keyword digests.
// Summaries are advisory text only; they never influence which paragraphs
// a digest contains.
package llm

import (
	"context"
	"fmt"

	"github.com/mwei/irdigest/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a short summary of a keyword result
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Result is the keyword result to summarize
	Result *model.KeywordResult

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai" or "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the API
	APIKey string

	// BaseURL for OpenAI-compatible endpoints (e.g. a local Ollama server)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 500,
	}
}

// NewProvider creates the configured provider, or nil when disabled.
func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(config)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", config.Provider)
	}
}

// BuildPrompt constructs the default summarization prompt. Only matched
// paragraph text is included; the model sees nothing beyond the digest.
func BuildPrompt(result *model.KeywordResult) string {
	prompt := fmt.Sprintf(`You are summarizing excerpts from a listed company's investor-relations documents. All excerpts mention the keyword %q.

RULES:
1. Summarize only what the excerpts say. Do not speculate or add outside knowledge.
2. Answer in the dominant language of the excerpts.
3. Keep it to 3-4 sentences.

Excerpts (%d documents, %d paragraphs):
`, result.Keyword, len(result.Documents), result.ParagraphCount())

	const maxParagraphs = 20
	n := 0
	for _, doc := range result.Documents {
		for _, para := range doc.Paragraphs {
			if n >= maxParagraphs {
				prompt += fmt.Sprintf("\n... and %d more paragraphs", result.ParagraphCount()-maxParagraphs)
				return prompt
			}
			prompt += fmt.Sprintf("\n[%s, %s] %s\n", doc.Doc.Title, doc.Doc.PublishDate, para.Text)
			n++
		}
	}

	return prompt
}
