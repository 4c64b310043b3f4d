package services

import (
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(
		&models.Profile{},
		&models.AIModel{},
		&models.Agent{},
		&models.Usage{},
		&models.UserBalance{},
		&models.AgentRating{},
		&models.Transaction{},
		&models.AgentCredits{},
	)
	err = db.AutoMigrate(
		&models.Profile{},
		&models.AIModel{},
		&models.Agent{},
		&models.Usage{},
		&models.UserBalance{},
		&models.AgentRating{},
		&models.Transaction{},
		&models.AgentCredits{},
	)
	if err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	database.RedisClient = nil
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func seedProfile(email string) *models.Profile {
	p := models.Profile{Email: email, Name: "Test User", Password: "x", Role: "user"}
	database.DB.Create(&p)
	return &p
}

func seedModel(provider models.AIProvider, costPer1k float64) *models.AIModel {
	m := models.AIModel{
		Provider:        provider,
		ModelName:       "test-model",
		DisplayName:     "Test Model",
		CostPer1kTokens: costPer1k,
		IsAvailable:     true,
		MaxTokens:       4000,
	}
	database.DB.Create(&m)
	return &m
}

func seedAgent(creatorID, modelID string, provider models.AIProvider, price float64) *models.Agent {
	a := models.Agent{
		CreatorID:    creatorID,
		Name:         "Test Agent",
		SystemPrompt: "You are a helpful assistant.",
		InputSchema: models.InputSchema{
			{Name: "topic", Type: models.FieldTypeText, Label: "Topic", Required: true},
			{Name: "tone", Type: models.FieldTypeText, Label: "Tone"},
		},
		Provider:    provider,
		AIModelID:   modelID,
		PricePerUse: price,
		Status:      models.AgentStatusActive,
	}
	database.DB.Create(&a)
	return &a
}
