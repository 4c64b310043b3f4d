// Package llm holds the generation vendor adapters. Each adapter shapes one
// vendor-specific request, issues a single blocking HTTP call, and normalizes
// the reply into a Response. No retries, no backoff, no streaming.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/models"
)

// MaxTokenCap is the hard upper clamp on the token budget passed to any
// vendor, independent of the model's own declared maximum.
const MaxTokenCap = 4000

const requestTimeout = 120 * time.Second

var (
	ErrUnsupportedProvider = errors.New("unsupported AI provider")
	ErrCredentialMissing   = errors.New("vendor API key not configured")
)

// GenerationError carries the vendor's HTTP status text on a non-success
// response or a transport failure.
type GenerationError struct {
	Provider models.AIProvider
	Message  string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

// Response is the normalized vendor reply.
type Response struct {
	Content    string
	TokensUsed int
}

// Client is a stateless request builder for one vendor.
type Client interface {
	Generate(ctx context.Context, model string, prompt string, maxTokens int) (*Response, error)
}

// ForProvider selects the adapter for the given vendor discriminator.
// Unknown discriminators are fatal.
func ForProvider(provider models.AIProvider, cfg *config.Config) (Client, error) {
	switch provider {
	case models.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case models.ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	case models.ProviderGoogle:
		return NewGoogleClient(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, provider)
	}
}

func clampTokens(requested int) int {
	if requested <= 0 || requested > MaxTokenCap {
		return MaxTokenCap
	}
	return requested
}
