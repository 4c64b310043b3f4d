package ai_model

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public, read-only model catalog.
func RegisterRoutes(router *gin.RouterGroup) {
	m := router.Group("/models")
	m.GET("", ListModels)
	m.GET("/:id", GetModel)
}

// RegisterAdminRoutes mounts catalog management under an admin group.
func RegisterAdminRoutes(router *gin.RouterGroup) {
	m := router.Group("/models")
	m.POST("", CreateModel)
	m.PATCH("/:id/availability", UpdateAvailability)
}
