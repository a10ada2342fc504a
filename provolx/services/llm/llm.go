// provolx/services/llm/llm.go
package llm

import (
	"context"
	"errors"
	"fmt"

	"provolx/provolx/config"
)

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// Generator turns one flattened prompt into free-form answer text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// New builds the Generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.Config) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.MaxOutputTokens)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.MaxOutputTokens), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
