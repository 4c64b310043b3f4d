package agent

import "github.com/kiwi13nz/AgentFlow/internal/models"

// CreateAgentInput is the creator's publishing payload.
type CreateAgentInput struct {
	Name         string             `json:"name" binding:"required"`
	Description  string             `json:"description"`
	SystemPrompt string             `json:"system_prompt" binding:"required"`
	InputSchema  models.InputSchema `json:"input_schema"`
	AIModelID    string             `json:"ai_model_id" binding:"required,uuid"`
	PricePerUse  float64            `json:"price_per_use" binding:"gte=0"`
	Category     string             `json:"category"`
	Tags         models.StringSlice `json:"tags"`
	Status       models.AgentStatus `json:"status" binding:"omitempty,oneof=draft active inactive"`
}

// UpdateAgentInput carries a partial edit. Absent fields are left untouched.
type UpdateAgentInput struct {
	Name         *string             `json:"name"`
	Description  *string             `json:"description"`
	SystemPrompt *string             `json:"system_prompt"`
	InputSchema  *models.InputSchema `json:"input_schema"`
	AIModelID    *string             `json:"ai_model_id" binding:"omitempty,uuid"`
	PricePerUse  *float64            `json:"price_per_use" binding:"omitempty,gte=0"`
	Category     *string             `json:"category"`
	Tags         *models.StringSlice `json:"tags"`
	Status       *models.AgentStatus `json:"status" binding:"omitempty,oneof=draft active inactive"`
}

// UpdateStatusInput flips an agent between draft, active and inactive.
type UpdateStatusInput struct {
	Status models.AgentStatus `json:"status" binding:"required,oneof=draft active inactive"`
}
