package appstate

import (
	"testing"

	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/internal/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.Profile{}, &models.AIModel{}, &models.Agent{}, &models.Usage{})
	if err := db.AutoMigrate(&models.Profile{}, &models.AIModel{}, &models.Agent{}, &models.Usage{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	database.DB = db
	database.RedisClient = nil
}

func seedMarketplace(t *testing.T) (*models.Profile, *models.Agent) {
	t.Helper()
	creator := models.Profile{Email: "creator@example.com", Password: "x"}
	database.DB.Create(&creator)

	model := models.AIModel{Provider: models.ProviderOpenAI, ModelName: "m", DisplayName: "M", IsAvailable: true}
	database.DB.Create(&model)

	agent := models.Agent{
		CreatorID:    creator.ID,
		Name:         "Agent",
		SystemPrompt: "x",
		Provider:     models.ProviderOpenAI,
		AIModelID:    model.ID,
		Status:       models.AgentStatusActive,
	}
	database.DB.Create(&agent)
	return &creator, &agent
}

func TestLoaderInitializeAnonymous(t *testing.T) {
	setupTestDB(t)
	_, _ = seedMarketplace(t)

	store := NewStore()
	NewLoader(store).Initialize(nil)

	s := store.Snapshot()
	assert.False(t, s.Loading)
	assert.False(t, s.IsAuthenticated)
	assert.Len(t, s.Agents, 1)
	assert.Len(t, s.AIModels, 1)
	assert.Empty(t, s.MyAgents)
}

func TestLoaderInitializeSignedIn(t *testing.T) {
	setupTestDB(t)
	creator, agent := seedMarketplace(t)

	database.DB.Create(&models.Usage{
		UserID:  creator.ID,
		AgentID: agent.ID,
		Status:  models.UsageStatusCompleted,
	})

	store := NewStore()
	NewLoader(store).Initialize(creator)

	s := store.Snapshot()
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, creator.ID, s.User.ID)
	assert.Len(t, s.MyAgents, 1)
	assert.Len(t, s.MyUsages, 1)
}

func TestLoaderClearsUserStateOnSignOut(t *testing.T) {
	setupTestDB(t)
	creator, _ := seedMarketplace(t)

	services.ResetSessionListeners()
	t.Cleanup(services.ResetSessionListeners)

	store := NewStore()
	loader := NewLoader(store)
	loader.WatchSessionEvents()
	loader.Initialize(creator)

	store.Dispatch(Navigate{Page: PageDashboard})
	assert.Len(t, store.Snapshot().MyAgents, 1)

	services.LogoutUser(creator.ID)

	s := store.Snapshot()
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
	assert.Empty(t, s.MyAgents)
	assert.Empty(t, s.MyUsages)
	assert.Equal(t, PageLanding, s.CurrentPage)
}
