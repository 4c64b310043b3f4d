package dashboard

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	d := router.Group("/dashboard")
	d.GET("/balance", Balance)
	d.GET("/activity", Activity)
	d.GET("/transactions", Transactions)
	d.GET("/transactions/export", ExportTransactions)
}
