package llm

import (
	"clementus360/smarti-ai/config"
	"context"
	"fmt"
)

// NewCompleter builds the completer for the configured provider.
func NewCompleter(ctx context.Context, settings config.Settings) (Completer, error) {
	switch settings.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAICompleter(OpenAIOptions{
			APIKey:    settings.OpenAIAPIKey,
			BaseURL:   settings.OpenAIBaseURL,
			Model:     settings.OpenAIModel,
			MaxTokens: settings.MaxTokens,
			Timeout:   settings.UpstreamTimeout,
		}), nil
	case config.ProviderGemini:
		completer, err := NewGeminiCompleter(ctx, GeminiOptions{
			APIKey:    settings.GeminiAPIKey,
			Model:     settings.GeminiModel,
			MaxTokens: settings.MaxTokens,
			Timeout:   settings.UpstreamTimeout,
		})
		if err != nil {
			return nil, err
		}
		return completer, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: %s, %s)", settings.Provider, config.ProviderOpenAI, config.ProviderGemini)
	}
}
