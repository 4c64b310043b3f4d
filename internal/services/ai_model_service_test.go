package services

import (
	"testing"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestListAvailableModels(t *testing.T) {
	setupTestDB()

	database.DB.Create(&[]models.AIModel{
		{Provider: models.ProviderOpenAI, ModelName: "m1", DisplayName: "M1", IsAvailable: true},
		{Provider: models.ProviderAnthropic, ModelName: "m2", DisplayName: "M2", IsAvailable: true},
		{Provider: models.ProviderGoogle, ModelName: "m3", DisplayName: "M3", IsAvailable: false},
	})

	list, err := ListAvailableModels()
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	// Ordered by provider.
	assert.Equal(t, models.ProviderAnthropic, list[0].Provider)
	assert.Equal(t, models.ProviderOpenAI, list[1].Provider)
}

func TestListAvailableModelsUsesCache(t *testing.T) {
	setupTestDB()
	mr := setupTestRedis()
	defer mr.Close()

	database.DB.Create(&models.AIModel{Provider: models.ProviderOpenAI, ModelName: "m1", DisplayName: "M1", IsAvailable: true})

	first, err := ListAvailableModels()
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	// A direct DB write is invisible until the cache expires or is
	// invalidated through the service.
	database.DB.Create(&models.AIModel{Provider: models.ProviderGoogle, ModelName: "m2", DisplayName: "M2", IsAvailable: true})
	cached, err := ListAvailableModels()
	assert.NoError(t, err)
	assert.Len(t, cached, 1)

	// Service-path writes invalidate.
	assert.NoError(t, CreateAIModel(&models.AIModel{Provider: models.ProviderAnthropic, ModelName: "m3", DisplayName: "M3", IsAvailable: true}))
	fresh, err := ListAvailableModels()
	assert.NoError(t, err)
	assert.Len(t, fresh, 3)
}

func TestFilterModelsForUser(t *testing.T) {
	list := []models.AIModel{
		{ModelName: "free", IsFree: true, RequiresPro: true},
		{ModelName: "open"},
		{ModelName: "pro-only", RequiresPro: true},
	}

	visible := FilterModelsForUser(list, false)
	assert.Len(t, visible, 2)
	for _, m := range visible {
		assert.NotEqual(t, "pro-only", m.ModelName)
	}

	assert.Len(t, FilterModelsForUser(list, true), 3)
}

func TestUpdateModelAvailability(t *testing.T) {
	setupTestDB()

	m := seedModel(models.ProviderOpenAI, 0.01)
	assert.NoError(t, UpdateModelAvailability(m.ID, false))

	reloaded, err := GetAIModelByID(m.ID)
	assert.NoError(t, err)
	assert.False(t, reloaded.IsAvailable)

	assert.ErrorIs(t, UpdateModelAvailability("00000000-0000-0000-0000-000000000000", true), ErrModelNotFound)
}
