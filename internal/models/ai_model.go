package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AIProvider identifies the external generation vendor hosting a model.
type AIProvider string

const (
	ProviderOpenAI    AIProvider = "openai"
	ProviderAnthropic AIProvider = "anthropic"
	ProviderGoogle    AIProvider = "google"
)

// AIModel is read-mostly reference data describing one vendor-hosted model.
type AIModel struct {
	ID              string     `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	Provider        AIProvider `gorm:"index;not null" json:"provider"`
	ModelName       string     `gorm:"not null" json:"model_name"`
	DisplayName     string     `gorm:"not null" json:"display_name"`
	Description     string     `json:"description"`
	CostPer1kTokens float64    `gorm:"column:cost_per_1k_tokens;not null;default:0" json:"cost_per_1k_tokens"`
	IsFree          bool       `gorm:"not null;default:false" json:"is_free"`
	IsAvailable     bool       `gorm:"index;not null;default:true" json:"is_available"`
	RequiresPro     bool       `gorm:"not null;default:false" json:"requires_pro"`
	MaxTokens       int        `gorm:"not null;default:4000" json:"max_tokens"`
}

func (AIModel) TableName() string {
	return "ai_models"
}

func (m *AIModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
