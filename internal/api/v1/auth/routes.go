package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/kiwi13nz/AgentFlow/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.POST("/logout", middleware.AuthMiddleware(), Logout)
	auth.GET("/session", middleware.AuthMiddleware(), Session)
	auth.GET("/oauth/:provider", OAuthRedirect)
}
