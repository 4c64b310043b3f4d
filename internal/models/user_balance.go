package models

import "time"

// UserBalance tracks a creator's earnings. Read-only from the API surface;
// only the execution flow and purchase webhooks mutate it.
type UserBalance struct {
	UserID           string    `gorm:"type:uuid;primarykey" json:"user_id"`
	AvailableBalance float64   `gorm:"not null;default:0" json:"available_balance"`
	PendingBalance   float64   `gorm:"not null;default:0" json:"pending_balance"`
	TotalEarned      float64   `gorm:"not null;default:0" json:"total_earned"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (UserBalance) TableName() string {
	return "user_balances"
}
