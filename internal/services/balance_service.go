package services

import (
	"errors"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"gorm.io/gorm"
)

// GetUserBalance returns the creator's earnings row. A missing row reads as
// an all-zero balance rather than an error.
func GetUserBalance(userID string) (*models.UserBalance, error) {
	var balance models.UserBalance
	err := database.DB.First(&balance, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserBalance{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}
