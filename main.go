package main

import (
	"log"

	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/api"
	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/models"
	"github.com/kiwi13nz/AgentFlow/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// @title AgentFlow API
// @version 1.0
// @description AI agent marketplace: creators publish agents, users execute them against vendor-hosted models.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	err = logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	router, err := api.NewRouter()
	if err != nil {
		log.Fatalf("failed to create router: %v", err)
	}

	// Migrate the schema
	err = database.DB.AutoMigrate(
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
		log.Fatalf("failed to migrate database: %v", err)
	}

	seedDefaultModels()
	initAdminUser()

	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// seedDefaultModels fills the model catalog on first boot so agents can be
// created before an administrator curates the list.
func seedDefaultModels() {
	var count int64
	database.DB.Model(&models.AIModel{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []models.AIModel{
		{Provider: models.ProviderOpenAI, ModelName: "gpt-4o-mini", DisplayName: "GPT-4o mini", CostPer1kTokens: 0.0006, IsFree: true, IsAvailable: true, MaxTokens: 4000},
		{Provider: models.ProviderOpenAI, ModelName: "gpt-4o", DisplayName: "GPT-4o", CostPer1kTokens: 0.01, IsAvailable: true, RequiresPro: true, MaxTokens: 4000},
		{Provider: models.ProviderAnthropic, ModelName: "claude-3-5-haiku-latest", DisplayName: "Claude 3.5 Haiku", CostPer1kTokens: 0.004, IsFree: true, IsAvailable: true, MaxTokens: 4000},
		{Provider: models.ProviderAnthropic, ModelName: "claude-3-5-sonnet-latest", DisplayName: "Claude 3.5 Sonnet", CostPer1kTokens: 0.015, IsAvailable: true, RequiresPro: true, MaxTokens: 4000},
		{Provider: models.ProviderGoogle, ModelName: "gemini-1.5-flash", DisplayName: "Gemini 1.5 Flash", CostPer1kTokens: 0.0003, IsFree: true, IsAvailable: true, MaxTokens: 4000},
	}

	for i := range defaults {
		if err := database.DB.Create(&defaults[i]).Error; err != nil {
			log.Printf("failed to seed model %s: %v", defaults[i].ModelName, err)
		}
	}
	log.Println("Default AI models seeded.")
}

func initAdminUser() {
	adminEmail := "admin@admin.com"
	adminPassword := "ChangeMe1234"

	var admin models.Profile
	result := database.DB.Where("email = ?", adminEmail).First(&admin)

	if result.Error != nil {
		if result.Error.Error() == "record not found" {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}

			admin = models.Profile{
				Email:    adminEmail,
				Name:     "Administrator",
				Password: string(hashedPassword),
				Role:     "admin",
			}

			if err := database.DB.Create(&admin).Error; err != nil {
				log.Fatalf("failed to create admin user: %v", err)
			}
			log.Println("Admin user created successfully!")
		} else {
			log.Fatalf("failed to check for admin user: %v", result.Error)
		}
	} else {
		log.Println("Admin user already exists.")
	}
}
