package agent

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public marketplace reads.
func RegisterRoutes(router *gin.RouterGroup) {
	agents := router.Group("/agents")
	agents.GET("", ListAgents)
	agents.GET("/:id", GetAgent)
}

// RegisterAuthorizedRoutes mounts creator operations behind auth. The own
// listing lives under /my to keep /agents/:id free for the wildcard.
func RegisterAuthorizedRoutes(router *gin.RouterGroup) {
	router.GET("/my/agents", ListMyAgents)

	agents := router.Group("/agents")
	agents.POST("", CreateAgent)
	agents.PUT("/:id", UpdateAgent)
	agents.PATCH("/:id/status", UpdateAgentStatus)
}
