package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/utils"
)

const defaultGoogleBaseURL = "https://generativelanguage.googleapis.com"

// googleTokenEstimate is used when the response omits usage metadata.
const googleTokenEstimate = 1000

type GoogleClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGoogleClient(cfg *config.Config) *GoogleClient {
	baseURL := cfg.GoogleBaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &GoogleClient{
		apiKey:  cfg.GoogleAPIKey,
		baseURL: baseURL,
		client:  utils.NewHTTPClient(requestTimeout),
	}
}

type googleRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleGenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type googleResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata *struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (c *GoogleClient) Generate(ctx context.Context, model string, prompt string, maxTokens int) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: google", ErrCredentialMissing)
	}

	payload, err := json.Marshal(googleRequest{
		Contents: []googleContent{{Parts: []googlePart{{Text: prompt}}}},
		GenerationConfig: googleGenerationConfig{
			MaxOutputTokens: clampTokens(maxTokens),
			Temperature:     0.7,
		},
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GenerationError{Provider: models.ProviderGoogle, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GenerationError{Provider: models.ProviderGoogle, Message: resp.Status}
	}

	var data googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &GenerationError{Provider: models.ProviderGoogle, Message: "failed to decode response: " + err.Error()}
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return nil, &GenerationError{Provider: models.ProviderGoogle, Message: "empty candidates in response"}
	}

	tokens := googleTokenEstimate
	if data.UsageMetadata != nil && data.UsageMetadata.TotalTokenCount > 0 {
		tokens = data.UsageMetadata.TotalTokenCount
	}

	return &Response{
		Content:    data.Candidates[0].Content.Parts[0].Text,
		TokensUsed: tokens,
	}, nil
}
