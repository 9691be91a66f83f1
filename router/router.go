package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Adarshn09/YoutubeDownloder1/controller"
)

// SetupRouter wires the HTTP routes onto a gin engine.
func SetupRouter(ct *controller.Controller) *gin.Engine {
	r := gin.Default()

	r.GET("/", ct.Index)
	r.GET("/health", ct.Health)
	r.GET("/test", ct.Test)

	r.POST("/get_video_info", ct.GetVideoInfo)
	r.POST("/download", ct.Download)

	r.GET("/stats", ct.Stats)
	r.GET("/api/stats", ct.APIStats)
	r.GET("/api/system", ct.System)

	r.GET("/ws/progress", ct.Progress)

	return r
}
