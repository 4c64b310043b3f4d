package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UsageStatus string

const (
	UsageStatusPending   UsageStatus = "pending"
	UsageStatusCompleted UsageStatus = "completed"
	UsageStatusFailed    UsageStatus = "failed"
)

// Usage records one end-user invocation of an agent. Rows are created in
// pending state before any vendor call and transition exactly once to
// completed or failed.
type Usage struct {
	ID           string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UserID       string         `gorm:"type:uuid;index;not null" json:"user_id"`
	AgentID      string         `gorm:"type:uuid;index;not null" json:"agent_id"`
	Agent        *Agent         `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	InputData    datatypes.JSON `gorm:"type:jsonb" json:"input_data" swaggertype:"object"`
	OutputData   string         `gorm:"type:text" json:"output_data"`
	TokensUsed   int            `json:"tokens_used"`
	Cost         float64        `gorm:"not null;default:0" json:"cost"`
	Status       UsageStatus    `gorm:"index;not null;default:'pending'" json:"status"`
	ErrorMessage string         `json:"error_message"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}

func (Usage) TableName() string {
	return "agent_usages"
}

func (u *Usage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Terminal reports whether the usage reached a final state.
func (u *Usage) Terminal() bool {
	return u.Status == UsageStatusCompleted || u.Status == UsageStatusFailed
}
