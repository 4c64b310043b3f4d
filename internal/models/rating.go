package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgentRating is one user's rating of one agent. The (user, agent) pair is
// unique; re-rating replaces the previous row and the agent aggregates are
// recomputed.
type AgentRating struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `gorm:"type:uuid;uniqueIndex:idx_ratings_user_agent;not null" json:"user_id"`
	AgentID   string    `gorm:"type:uuid;uniqueIndex:idx_ratings_user_agent;not null" json:"agent_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Review    string    `gorm:"type:text" json:"review"`
}

func (AgentRating) TableName() string {
	return "agent_ratings"
}

func (r *AgentRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
