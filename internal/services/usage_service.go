package services

import (
	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
)

const (
	// UserHistoryLimit caps the dashboard usage history page.
	UserHistoryLimit = 50
	// CreatorActivityLimit caps the creator's recent-activity feed.
	CreatorActivityLimit = 10
)

// ListUsagesByUser returns a user's own invocation history, newest first.
func ListUsagesByUser(userID string) ([]models.Usage, error) {
	var usages []models.Usage
	err := database.DB.
		Preload("Agent").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(UserHistoryLimit).
		Find(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

// ListRecentUsagesForCreator returns the latest invocations of any agent the
// given creator owns.
func ListRecentUsagesForCreator(creatorID string) ([]models.Usage, error) {
	var usages []models.Usage
	err := database.DB.
		Preload("Agent").
		Joins("JOIN agents ON agents.id = agent_usages.agent_id").
		Where("agents.creator_id = ?", creatorID).
		Order("agent_usages.created_at DESC").
		Limit(CreatorActivityLimit).
		Find(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}
