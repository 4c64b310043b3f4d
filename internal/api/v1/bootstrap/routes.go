package bootstrap

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/bootstrap", Bootstrap)
}
