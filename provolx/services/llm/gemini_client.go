package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"provolx/provolx/utils/logging"
)

// modelsAPI is the slice of genai.Models the client uses.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	models          modelsAPI
	model           string
	maxOutputTokens int32
}

func NewGeminiClient(ctx context.Context, apiKey, model string, maxOutputTokens int32) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{models: client.Models, model: model, maxOutputTokens: maxOutputTokens}, nil
}

func (c *GeminiClient) Model() string {
	return c.model
}

// Generate sends prompt as a single user turn. There is no retry and no
// client-side deadline beyond what ctx carries.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "gemini_generate")()

	var cfg *genai.GenerateContentConfig
	if c.maxOutputTokens > 0 {
		cfg = &genai.GenerateContentConfig{MaxOutputTokens: c.maxOutputTokens}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
