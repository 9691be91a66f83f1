package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adarshn09/YoutubeDownloder1/models"
)

// APIStats handles GET /api/stats with the aggregate counters only.
func (ct *Controller) APIStats(c *gin.Context) {
	stats, err := ct.Svc.Store.Stats(c.Request.Context())
	if err != nil {
		log.Printf("[StatsController] Stats query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Stats handles GET /stats: aggregates plus the popular and recent listings.
func (ct *Controller) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := ct.Svc.Store.Stats(ctx)
	if err != nil {
		log.Printf("[StatsController] Stats query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	popular, err := ct.Svc.Store.PopularVideos(ctx, 10)
	if err != nil {
		log.Printf("[StatsController] Popular query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	recent, err := ct.Svc.Store.RecentDownloads(ctx, 10)
	if err != nil {
		log.Printf("[StatsController] Recent query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":            stats,
		"popular_videos":   popular,
		"recent_downloads": recent,
	})
}

// Test handles GET /test: runs one extraction against a known public video so
// operators can verify the pipeline end to end.
func (ct *Controller) Test(c *gin.Context) {
	ref := models.VideoRef{ID: "dQw4w9WgXcQ", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}

	info, err := ct.Svc.GetVideoInfo(c.Request.Context(), ref)
	if err != nil {
		status, msg := mapExtractionError(err)
		c.JSON(status, gin.H{"status": "error", "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"title":   info.Title,
		"formats": len(info.Formats),
	})
}
