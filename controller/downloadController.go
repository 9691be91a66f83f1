package controller

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Adarshn09/YoutubeDownloder1/models"
	util "github.com/Adarshn09/YoutubeDownloder1/utils"
)

// Download handles POST /download. The media is fetched server-side into a
// scratch directory and streamed back as an attachment; every failure path
// sends the browser back to the front page with a readable error.
func (ct *Controller) Download(c *gin.Context) {
	var req models.DownloadRequest
	if err := c.ShouldBind(&req); err != nil || req.URL == "" {
		redirectWithError(c, "Please provide a YouTube URL")
		return
	}
	if req.FormatID == "" {
		req.FormatID = "best"
	}

	ref, ok := util.ValidateURL(req.URL)
	if !ok {
		redirectWithError(c, "Please enter a valid YouTube URL")
		return
	}

	if util.SlotsFull() {
		redirectWithError(c, "The server is busy right now. Please try again shortly.")
		return
	}

	result, err := ct.Svc.Download(c.Request.Context(), ref, req.FormatID, req.RequestID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		_, msg := mapExtractionError(err)
		log.Printf("[DownloadController] Download of %s (%s) failed: %v", ref.ID, req.FormatID, err)
		redirectWithError(c, msg)
		return
	}
	defer util.RemoveScratchDir(result.ScratchDir)

	log.Printf("[DownloadController] Serving %s for %s", result.FileName, ref.ID)
	c.FileAttachment(result.FilePath, result.FileName)
}

func redirectWithError(c *gin.Context, msg string) {
	c.Redirect(http.StatusFound, "/?error="+url.QueryEscape(msg))
}
