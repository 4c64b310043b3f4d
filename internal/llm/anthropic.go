package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

type AnthropicClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAnthropicClient(cfg *config.Config) *AnthropicClient {
	baseURL := cfg.AnthropicBaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	return &AnthropicClient{
		apiKey:  cfg.AnthropicAPIKey,
		baseURL: baseURL,
		client:  utils.NewHTTPClient(requestTimeout),
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (c *AnthropicClient) Generate(ctx context.Context, model string, prompt string, maxTokens int) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: anthropic", ErrCredentialMissing)
	}

	payload, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: clampTokens(maxTokens),
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GenerationError{Provider: models.ProviderAnthropic, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GenerationError{Provider: models.ProviderAnthropic, Message: resp.Status}
	}

	var data anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &GenerationError{Provider: models.ProviderAnthropic, Message: "failed to decode response: " + err.Error()}
	}
	if len(data.Content) == 0 {
		return nil, &GenerationError{Provider: models.ProviderAnthropic, Message: "empty content in response"}
	}

	return &Response{
		Content:    data.Content[0].Text,
		TokensUsed: data.Usage.InputTokens + data.Usage.OutputTokens,
	}, nil
}
