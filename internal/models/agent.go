package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentStatus string

const (
	AgentStatusDraft    AgentStatus = "draft"
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

// FieldType is the closed set of input form field kinds an agent may declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeSelect   FieldType = "select"
)

// InputField is one descriptor in an agent's ordered input schema. Names are
// form-state keys and must be unique within one agent.
type InputField struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
}

// InputSchema stores the ordered field list as a JSON column
type InputSchema []InputField

// Value implements the driver.Valuer interface
func (s InputSchema) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface
func (s *InputSchema) Scan(value interface{}) error {
	if value == nil {
		*s = InputSchema{}
		return nil
	}

	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 {
		*s = InputSchema{}
		return nil
	}

	var result []InputField
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*s = InputSchema(result)
	return nil
}

// Agent is a stored configuration (system prompt + input schema + model
// choice + price) that users invoke to obtain generated text.
type Agent struct {
	ID            string      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	CreatorID     string      `gorm:"type:uuid;index;not null" json:"creator_id"`
	Creator       *Profile    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Name          string      `gorm:"not null" json:"name"`
	Description   string      `json:"description"`
	SystemPrompt  string      `gorm:"type:text;not null" json:"system_prompt"`
	InputSchema   InputSchema `gorm:"type:jsonb;not null;default:'[]'" json:"input_schema"`
	Provider      AIProvider  `gorm:"column:ai_provider;not null" json:"ai_provider"`
	AIModelID     string      `gorm:"column:ai_model_id;type:uuid;index;not null" json:"ai_model_id"`
	AIModel       *AIModel    `gorm:"foreignKey:AIModelID" json:"ai_model,omitempty"`
	PricePerUse   float64     `gorm:"not null;default:0" json:"price_per_use"`
	Category      string      `gorm:"index" json:"category"`
	Tags          StringSlice `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Status        AgentStatus `gorm:"index;not null;default:'draft'" json:"status"`
	IsFeatured    bool        `gorm:"not null;default:false" json:"is_featured"`
	TotalUses     int64       `gorm:"not null;default:0" json:"total_uses"`
	TotalRevenue  float64     `gorm:"not null;default:0" json:"total_revenue"`
	AverageRating float64     `gorm:"not null;default:0" json:"average_rating"`
	RatingCount   int64       `gorm:"not null;default:0" json:"rating_count"`
}

func (Agent) TableName() string {
	return "agents"
}

func (a *Agent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
