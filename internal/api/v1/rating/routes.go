package rating

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/agents/:id/rating", RateAgent)
}
