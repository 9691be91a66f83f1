package controller

import (
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Index handles GET /. The real front end lives elsewhere; this page exists
// so error redirects from /download land somewhere readable and so the
// service answers something sensible at its root.
func (ct *Controller) Index(c *gin.Context) {
	body := "<html><head><title>YouTube Downloader</title></head><body><h1>YouTube Downloader</h1>"
	if msg := c.Query("error"); msg != "" {
		body += "<p class=\"error\">" + html.EscapeString(msg) + "</p>"
	}
	body += "<p>POST /get_video_info with a YouTube URL to list formats.</p></body></html>"
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}
