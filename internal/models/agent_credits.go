package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgentCredits is a prepaid credit pack for one agent, bought through a
// Gumroad sale. Completed executions consume one credit when a pack with
// remaining credits exists.
type AgentCredits struct {
	ID                    string     `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	UserID                string     `gorm:"type:uuid;uniqueIndex:idx_credits_user_agent;not null" json:"user_id"`
	AgentID               string     `gorm:"type:uuid;uniqueIndex:idx_credits_user_agent;not null" json:"agent_id"`
	CreditsRemaining      int        `gorm:"not null;default:0" json:"credits_remaining"`
	TotalCreditsPurchased int        `gorm:"not null;default:0" json:"total_credits_purchased"`
	GumroadPurchaseID     string     `json:"gumroad_purchase_id,omitempty"`
	ExpiresAt             *time.Time `json:"expires_at,omitempty"`
}

func (AgentCredits) TableName() string {
	return "agent_credits"
}

func (c *AgentCredits) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
