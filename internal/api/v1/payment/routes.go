package payment

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public provider callback.
func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/payments/gumroad/webhook", GumroadWebhook)
}

// RegisterAuthorizedRoutes mounts the credit pack lookup behind auth.
func RegisterAuthorizedRoutes(router *gin.RouterGroup) {
	router.GET("/agents/:id/credits", GetAgentCredits)
}
