package services

import (
	"errors"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAgentNotFound      = errors.New("agent not found")
	ErrNotAgentCreator    = errors.New("only the creator can modify this agent")
	ErrModelMisconfigured = errors.New("agent references a model that cannot be loaded")
)

// AgentFilter restricts the marketplace listing.
type AgentFilter struct {
	Category string
	Search   string
	Featured bool
}

// ListMarketplaceAgents returns active agents whose referenced model is
// still available, ordered by descending total uses, with creator and model
// rows preloaded.
func ListMarketplaceAgents(filter AgentFilter) ([]models.Agent, error) {
	query := database.DB.
		Preload("Creator").
		Preload("AIModel").
		Joins("JOIN ai_models ON ai_models.id = agents.ai_model_id AND ai_models.is_available = ?", true).
		Where("agents.status = ?", models.AgentStatusActive)

	if filter.Category != "" {
		query = query.Where("agents.category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("agents.name LIKE ? OR agents.description LIKE ?", like, like)
	}
	if filter.Featured {
		query = query.Where("agents.is_featured = ?", true)
	}

	var agents []models.Agent
	if err := query.Order("agents.total_uses DESC").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

// GetAgentByID loads one agent with its creator and model preloaded.
func GetAgentByID(id string) (*models.Agent, error) {
	var agent models.Agent
	err := database.DB.
		Preload("Creator").
		Preload("AIModel").
		First(&agent, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	return &agent, nil
}

// ListAgentsByCreator returns a creator's own agents regardless of status,
// newest first.
func ListAgentsByCreator(creatorID string) ([]models.Agent, error) {
	var agents []models.Agent
	err := database.DB.
		Preload("AIModel").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// CreateAgent validates the input schema and the model reference, then
// stores the agent. A dangling or unavailable model reference is a
// configuration error, never silently defaulted.
func CreateAgent(agent *models.Agent) error {
	if err := models.ValidateInputSchema(agent.InputSchema); err != nil {
		return err
	}

	model, err := GetAIModelByID(agent.AIModelID)
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			return ErrModelMisconfigured
		}
		return err
	}
	if !model.IsAvailable {
		return ErrModelMisconfigured
	}

	agent.Provider = model.Provider

	return database.DB.Create(agent).Error
}

// AgentUpdate carries the creator-editable agent fields.
type AgentUpdate struct {
	Name         *string
	Description  *string
	SystemPrompt *string
	InputSchema  *models.InputSchema
	AIModelID    *string
	PricePerUse  *float64
	Category     *string
	Tags         *models.StringSlice
	Status       *models.AgentStatus
}

// UpdateAgent applies a creator's partial edit. Counter columns are never
// writable here; they move only through the execution flow.
func UpdateAgent(agentID, creatorID string, update AgentUpdate) (*models.Agent, error) {
	var agent models.Agent
	if err := database.DB.First(&agent, "id = ?", agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}
	if agent.CreatorID != creatorID {
		return nil, ErrNotAgentCreator
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.SystemPrompt != nil {
		updates["system_prompt"] = *update.SystemPrompt
	}
	if update.InputSchema != nil {
		if err := models.ValidateInputSchema(*update.InputSchema); err != nil {
			return nil, err
		}
		updates["input_schema"] = *update.InputSchema
	}
	if update.AIModelID != nil {
		model, err := GetAIModelByID(*update.AIModelID)
		if err != nil || !model.IsAvailable {
			return nil, ErrModelMisconfigured
		}
		updates["ai_model_id"] = *update.AIModelID
		updates["ai_provider"] = model.Provider
	}
	if update.PricePerUse != nil {
		updates["price_per_use"] = *update.PricePerUse
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Tags != nil {
		updates["tags"] = *update.Tags
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&agent).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := database.DB.Preload("AIModel").First(&agent, "id = ?", agentID).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}
