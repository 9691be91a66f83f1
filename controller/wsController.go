package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	ws "github.com/Adarshn09/YoutubeDownloder1/websocket"
)

// Progress handles GET /ws/progress. The client supplies the request_id it
// will post to /download; the connection then receives progress frames for
// that request until either side closes.
func (ct *Controller) Progress(c *gin.Context) {
	requestID := c.Query("request_id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id is required"})
		return
	}

	conn, err := ws.Upgrade(c.Writer, c.Request)
	if err != nil {
		log.Printf("[WSController] Upgrade failed for %s: %v", requestID, err)
		return
	}
	wc := ws.Register(requestID, conn)
	defer ws.Unregister(requestID, wc)

	// Hold the connection open; we never expect client frames, so the read
	// loop only notices the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
