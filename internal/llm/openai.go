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

const defaultOpenAIBaseURL = "https://api.openai.com"

type OpenAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	baseURL := cfg.OpenAIBaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:  cfg.OpenAIAPIKey,
		baseURL: baseURL,
		client:  utils.NewHTTPClient(requestTimeout),
	}
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

func (c *OpenAIClient) Generate(ctx context.Context, model string, prompt string, maxTokens int) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: openai", ErrCredentialMissing)
	}

	payload, err := json.Marshal(openAIRequest{
		Model:       model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		MaxTokens:   clampTokens(maxTokens),
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GenerationError{Provider: models.ProviderOpenAI, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GenerationError{Provider: models.ProviderOpenAI, Message: resp.Status}
	}

	var data openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &GenerationError{Provider: models.ProviderOpenAI, Message: "failed to decode response: " + err.Error()}
	}
	if len(data.Choices) == 0 {
		return nil, &GenerationError{Provider: models.ProviderOpenAI, Message: "empty choices in response"}
	}

	return &Response{
		Content:    data.Choices[0].Message.Content,
		TokensUsed: data.Usage.TotalTokens,
	}, nil
}
