package usage

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/agents/:id/execute", Execute)
	router.GET("/usages", History)
}
