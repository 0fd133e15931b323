package router

import (
	"github.com/gin-gonic/gin"
	"github.com/urgelog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(a *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api")
	{
		api.POST("/urges", a.LogUrge)
		api.GET("/urges", a.ListUrges)

		api.POST("/checkins", a.UpsertCheckin)
		api.GET("/checkins/:date", a.GetCheckin)

		api.GET("/progress", a.GetProgress)
		api.POST("/content/:id/complete", a.CompleteContent)

		api.GET("/profile", a.GetProfile)
		api.PUT("/profile", a.SaveProfile)

		api.GET("/subscription", a.GetSubscription)
		api.PUT("/subscription", a.ReplaceSubscription)

		api.DELETE("/data", a.WipeAll)

		backup := api.Group("/backup")
		{
			backup.GET("/export", a.ExportBackup)
			backup.POST("/validate", a.ValidateBackup)
			backup.POST("/import", a.ImportBackup)
		}
	}

	return r
}
