package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/config"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/agent"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/ai_model"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/auth"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/bootstrap"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/dashboard"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/payment"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/profile"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/rating"
	"github.com/kiwi13nz/AgentFlow/internal/api/v1/usage"
	"github.com/kiwi13nz/AgentFlow/internal/database"
	"github.com/kiwi13nz/AgentFlow/internal/middleware"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)
		agent.RegisterRoutes(v1)
		ai_model.RegisterRoutes(v1)
		bootstrap.RegisterRoutes(v1)
		payment.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			profile.RegisterRoutes(authorized)
			agent.RegisterAuthorizedRoutes(authorized)
			usage.RegisterRoutes(authorized)
			rating.RegisterRoutes(authorized)
			dashboard.RegisterRoutes(authorized)
			payment.RegisterAuthorizedRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			ai_model.RegisterAdminRoutes(admin)
		}
	}

	return router, nil
}
