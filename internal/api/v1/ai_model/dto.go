package ai_model

import "github.com/kiwi13nz/AgentFlow/internal/models"

// CreateModelInput describes one vendor-hosted model to register.
type CreateModelInput struct {
	Provider        models.AIProvider `json:"provider" binding:"required,oneof=openai anthropic google"`
	ModelName       string            `json:"model_name" binding:"required"`
	DisplayName     string            `json:"display_name" binding:"required"`
	Description     string            `json:"description"`
	CostPer1kTokens float64           `json:"cost_per_1k_tokens" binding:"gte=0"`
	IsFree          bool              `json:"is_free"`
	RequiresPro     bool              `json:"requires_pro"`
	MaxTokens       int               `json:"max_tokens" binding:"gte=0"`
}

type UpdateAvailabilityInput struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}
