package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provolx/provolx/config"
)

func TestOpenAIClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req gptChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, int32(500), req.MaxTokens)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "the prompt", req.Messages[0].Content)

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test", srv.URL+"/v1/", "gpt-4o-mini", 500)
	out, err := c.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, "gpt-4o-mini", c.Model())
}

func TestOpenAIClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIClient("k", srv.URL, "m", 0).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewOpenAIClient("k", srv.URL, "m", 0).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNew_SelectsProvider(t *testing.T) {
	g, err := New(context.Background(), config.Config{
		Provider: config.ProviderOpenAI, OpenAIAPIKey: "k", OpenAIBaseURL: "http://x", Model: "m",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, g)

	_, err = New(context.Background(), config.Config{Provider: "nope"})
	assert.Error(t, err)
}
