package profile

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.GET("", GetProfile)
	profile.PUT("", UpdateProfile)
	profile.POST("/avatar", UploadAvatar)
}
