package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeUsageSpend     TransactionType = "usage_spend"
	TransactionTypeCreatorEarning TransactionType = "creator_earning"
	TransactionTypeCreditPurchase TransactionType = "credit_purchase"
)

// Transaction is an append-only ledger row. Completed usages produce a spend
// row for the caller and an earning row for the creator; credit purchases
// produce a purchase row.
type Transaction struct {
	ID          string          `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time       `gorm:"precision:3" json:"created_at"`
	UserID      string          `gorm:"type:uuid;index;not null" json:"user_id"`
	Type        TransactionType `gorm:"type:varchar(50);index;not null" json:"type"`
	Amount      float64         `gorm:"type:decimal(20,8);not null" json:"amount"`
	Description string          `gorm:"type:text" json:"description"`
	AgentID     string          `gorm:"type:uuid;index" json:"agent_id,omitempty"`
	UsageID     string          `gorm:"type:uuid;index" json:"usage_id,omitempty"`
	Status      string          `gorm:"type:varchar(50);not null;default:'completed'" json:"status"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
