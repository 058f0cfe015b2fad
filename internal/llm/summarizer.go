package llm

import (
	"context"
	"fmt"

	"github.com/mwei/irdigest/internal/model"
)

// Summarizer wraps a provider for digest summarization. A zero-value or
// disabled summarizer is safe to use; Summarize then returns "".
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from the runtime config. When no
// provider is configured the summarizer is disabled, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// ProviderName returns the active provider's name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if !s.IsEnabled() {
		return ""
	}
	return s.provider.Name()
}

// Summarize produces a short summary of the result, or "" when disabled
// or when the result is empty.
func (s *Summarizer) Summarize(ctx context.Context, result *model.KeywordResult) (string, error) {
	if !s.IsEnabled() || result.Empty() {
		return "", nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:    result,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize %q: %w", result.Keyword, err)
	}
	return resp.Summary, nil
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
	}
}
