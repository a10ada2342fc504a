package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	httputils "provolx/provolx/utils/http"
	"provolx/provolx/utils/logging"
)

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint
// (OpenAI, Groq, a local gateway).
type OpenAIClient struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int32
	httpClient      *http.Client
}

func NewOpenAIClient(apiKey, baseURL, model string, maxOutputTokens int32) *OpenAIClient {
	return &OpenAIClient{
		apiKey:          apiKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		model:           model,
		maxOutputTokens: maxOutputTokens,
		httpClient:      http.DefaultClient,
	}
}

type gptChatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream"`
	MaxTokens int32     `json:"max_tokens,omitempty"`
}

type gptResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Model() string {
	return c.model
}

// Generate executes a single non-streaming completion with prompt as the only user message.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "openai_generate")()

	req := gptChatRequest{
		Model:     c.model,
		Messages:  []Message{{Role: "user", Content: prompt}},
		MaxTokens: c.maxOutputTokens,
	}

	var parsed gptResponse
	if err := httputils.PostJSONWithAuth(ctx, c.httpClient, c.baseURL+"/chat/completions", c.apiKey, req, &parsed); err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Choices[0].Message.Content, nil
}
