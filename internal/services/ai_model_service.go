package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"gorm.io/gorm"
)

var ErrModelNotFound = errors.New("ai model not found")

const (
	modelListCacheKey      = "ai_models:available"
	modelListCacheDuration = 10 * time.Minute
)

// ListAvailableModels returns the available reference models ordered by
// provider, via the redis cache when populated.
func ListAvailableModels() ([]models.AIModel, error) {
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, modelListCacheKey).Result()
		if err == nil {
			var cached []models.AIModel
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []models.AIModel
	if err := database.DB.
		Where("is_available = ?", true).
		Order("provider").
		Find(&list).Error; err != nil {
		return nil, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(list); err == nil {
			database.RedisClient.Set(database.Ctx, modelListCacheKey, data, modelListCacheDuration)
		}
	}

	return list, nil
}

// FilterModelsForUser drops pro-gated models for non-pro users, matching the
// marketplace subscription rules. Free models always pass.
func FilterModelsForUser(list []models.AIModel, userIsPro bool) []models.AIModel {
	filtered := make([]models.AIModel, 0, len(list))
	for _, m := range list {
		if m.IsFree || userIsPro || !m.RequiresPro {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// GetAIModelByID retrieves a model by ID
func GetAIModelByID(id string) (*models.AIModel, error) {
	var model models.AIModel
	if err := database.DB.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return &model, nil
}

// CreateAIModel creates a new reference model and invalidates the list cache
func CreateAIModel(model *models.AIModel) error {
	if err := database.DB.Create(model).Error; err != nil {
		return err
	}
	invalidateModelListCache()
	return nil
}

// UpdateModelAvailability flips the availability flag of a model
func UpdateModelAvailability(id string, available bool) error {
	result := database.DB.Model(&models.AIModel{}).Where("id = ?", id).Update("is_available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrModelNotFound
	}
	invalidateModelListCache()
	return nil
}

func invalidateModelListCache() {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, modelListCacheKey)
	}
}
