package services

import (
	"errors"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"gorm.io/gorm"
)

var ErrNoCredits = errors.New("no remaining credits for this agent")

// GetAgentCredits returns the user's credit pack for an agent, or nil when
// none exists.
func GetAgentCredits(userID, agentID string) (*models.AgentCredits, error) {
	var credits models.AgentCredits
	err := database.DB.First(&credits, "user_id = ? AND agent_id = ?", userID, agentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &credits, nil
}

// GrantCredits adds purchased credits to the user's pack for an agent,
// creating the pack on first purchase.
func GrantCredits(userID, agentID string, amount int, purchaseID string) (*models.AgentCredits, error) {
	var credits models.AgentCredits
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&credits, "user_id = ? AND agent_id = ?", userID, agentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			credits = models.AgentCredits{
				UserID:                userID,
				AgentID:               agentID,
				CreditsRemaining:      amount,
				TotalCreditsPurchased: amount,
				GumroadPurchaseID:     purchaseID,
			}
			return tx.Create(&credits).Error
		}
		if err != nil {
			return err
		}

		return tx.Model(&credits).Updates(map[string]interface{}{
			"credits_remaining":       gorm.Expr("credits_remaining + ?", amount),
			"total_credits_purchased": gorm.Expr("total_credits_purchased + ?", amount),
			"gumroad_purchase_id":     purchaseID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &credits, nil
}

// ConsumeCredit spends one credit from the user's pack. Returns ErrNoCredits
// when the user holds no pack or the pack is empty; callers treat that as a
// cash-priced execution.
func ConsumeCredit(userID, agentID string) error {
	result := database.DB.Model(&models.AgentCredits{}).
		Where("user_id = ? AND agent_id = ? AND credits_remaining > 0", userID, agentID).
		Update("credits_remaining", gorm.Expr("credits_remaining - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoCredits
	}
	return nil
}
