package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClampTokens(t *testing.T) {
	assert.Equal(t, 100, clampTokens(100))
	assert.Equal(t, MaxTokenCap, clampTokens(MaxTokenCap))
	assert.Equal(t, MaxTokenCap, clampTokens(MaxTokenCap+1))
	assert.Equal(t, MaxTokenCap, clampTokens(0))
	assert.Equal(t, MaxTokenCap, clampTokens(-5))
}

func TestForProvider(t *testing.T) {
	cfg := &config.Config{}

	for _, p := range []models.AIProvider{models.ProviderOpenAI, models.ProviderAnthropic, models.ProviderGoogle} {
		client, err := ForProvider(p, cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	}

	_, err := ForProvider("mistral", cfg)
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestOpenAIGenerate(t *testing.T) {
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hi"}},
			},
			"usage": map[string]int{"total_tokens": 42},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(&config.Config{OpenAIAPIKey: "k", OpenAIBaseURL: srv.URL})
	resp, err := client.Generate(context.Background(), "gpt-4o", "say hi", 9000)
	assert.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)
	assert.Equal(t, 42, resp.TokensUsed)

	assert.Equal(t, "gpt-4o", gotReq["model"])
	assert.Equal(t, 0.7, gotReq["temperature"])
	// Requests above the cap are clamped.
	assert.Equal(t, float64(MaxTokenCap), gotReq["max_tokens"])
}

func TestOpenAIGenerateMissingKey(t *testing.T) {
	client := NewOpenAIClient(&config.Config{})
	_, err := client.Generate(context.Background(), "gpt-4o", "x", 100)
	assert.ErrorIs(t, err, ErrCredentialMissing)
}

func TestOpenAIGenerateVendorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenAIClient(&config.Config{OpenAIAPIKey: "k", OpenAIBaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "gpt-4o", "x", 100)

	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
	assert.Equal(t, models.ProviderOpenAI, genErr.Provider)
	assert.Contains(t, genErr.Message, "429")
}

func TestAnthropicGenerate(t *testing.T) {
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"text": "hello"}},
			"usage":   map[string]int{"input_tokens": 10, "output_tokens": 25},
		})
	}))
	defer srv.Close()

	client := NewAnthropicClient(&config.Config{AnthropicAPIKey: "k", AnthropicBaseURL: srv.URL})
	resp, err := client.Generate(context.Background(), "claude-3-5-sonnet-latest", "say hello", 2000)
	assert.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	// Input and output tokens are summed.
	assert.Equal(t, 35, resp.TokensUsed)
	assert.Equal(t, float64(2000), gotReq["max_tokens"])
}

func TestGoogleGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "hey"}}}},
			},
			"usageMetadata": map[string]int{"totalTokenCount": 77},
		})
	}))
	defer srv.Close()

	client := NewGoogleClient(&config.Config{GoogleAPIKey: "k", GoogleBaseURL: srv.URL})
	resp, err := client.Generate(context.Background(), "gemini-1.5-flash", "say hey", 1000)
	assert.NoError(t, err)
	assert.Equal(t, "hey", resp.Content)
	assert.Equal(t, 77, resp.TokensUsed)
}

func TestGoogleGenerateEstimatesMissingUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "hey"}}}},
			},
		})
	}))
	defer srv.Close()

	client := NewGoogleClient(&config.Config{GoogleAPIKey: "k", GoogleBaseURL: srv.URL})
	resp, err := client.Generate(context.Background(), "gemini-1.5-flash", "x", 1000)
	assert.NoError(t, err)
	assert.Equal(t, googleTokenEstimate, resp.TokensUsed)
}
