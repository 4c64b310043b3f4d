package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
)

// TransactionFilter defines criteria for filtering ledger rows
type TransactionFilter struct {
	UserID    string
	Type      *models.TransactionType
	StartTime *time.Time
	EndTime   *time.Time
	Page      int
	Limit     int
}

// FindTransactions retrieves a paginated list of ledger rows with filtering
func FindTransactions(filter TransactionFilter) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := database.DB.Model(&models.Transaction{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.StartTime != nil {
		query = query.Where("created_at >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("created_at <= ?", *filter.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("created_at desc").Limit(filter.Limit).Offset(offset).Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// GenerateTransactionCSV generates a CSV export of ledger rows
func GenerateTransactionCSV(transactions []models.Transaction) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Time", "Type", "Amount", "Description", "Agent ID", "Usage ID", "Status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range transactions {
		record := []string{
			t.ID,
			t.CreatedAt.Format(time.RFC3339),
			string(t.Type),
			fmt.Sprintf("%.4f", t.Amount),
			t.Description,
			t.AgentID,
			t.UsageID,
			t.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
