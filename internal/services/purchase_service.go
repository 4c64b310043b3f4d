package services

import (
	"errors"
	"fmt"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/payment"
	"gorm.io/gorm"
)

var ErrDuplicateSale = errors.New("sale already processed")

// HandleCreditSale credits a verified sale to the buyer's pack and records
// the ledger row. Sales are idempotent by sale id.
func HandleCreditSale(sale *payment.Sale) (*models.AgentCredits, error) {
	var profile models.Profile
	if err := database.DB.First(&profile, "email = ?", sale.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no profile for purchase email %s", sale.Email)
		}
		return nil, err
	}

	var existing models.Transaction
	err := database.DB.First(&existing, "type = ? AND description = ?",
		models.TransactionTypeCreditPurchase, saleDescription(sale.SaleID)).Error
	if err == nil {
		return nil, ErrDuplicateSale
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := GetAgentByID(sale.AgentID); err != nil {
		return nil, err
	}

	credits, err := GrantCredits(profile.ID, sale.AgentID, sale.Credits, sale.SaleID)
	if err != nil {
		return nil, err
	}

	row := models.Transaction{
		UserID:      profile.ID,
		Type:        models.TransactionTypeCreditPurchase,
		Amount:      -sale.Amount,
		Description: saleDescription(sale.SaleID),
		AgentID:     sale.AgentID,
	}
	if err := database.DB.Create(&row).Error; err != nil {
		return nil, err
	}

	return credits, nil
}

func saleDescription(saleID string) string {
	return "Gumroad sale " + saleID
}
