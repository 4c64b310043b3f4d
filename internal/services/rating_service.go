package services

import (
	"errors"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// RateAgent stores or replaces the user's rating for an agent and recomputes
// the agent's aggregate rating columns in the same transaction.
func RateAgent(userID, agentID string, rating int, review string) (*models.AgentRating, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var agent models.Agent
	if err := database.DB.First(&agent, "id = ?", agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, err
	}

	var row models.AgentRating
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&row, "user_id = ? AND agent_id = ?", userID, agentID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = models.AgentRating{
				UserID:  userID,
				AgentID: agentID,
				Rating:  rating,
				Review:  review,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&row).Updates(map[string]interface{}{
				"rating": rating,
				"review": review,
			}).Error; err != nil {
				return err
			}
		}

		// Recompute aggregates from the rating rows rather than adjusting
		// incrementally, so re-rating stays correct.
		var stats struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&models.AgentRating{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("agent_id = ?", agentID).
			Scan(&stats).Error; err != nil {
			return err
		}

		return tx.Model(&models.Agent{}).
			Where("id = ?", agentID).
			Updates(map[string]interface{}{
				"average_rating": stats.Avg,
				"rating_count":   stats.Count,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &row, nil
}
