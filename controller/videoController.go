package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adarshn09/YoutubeDownloder1/models"
	"github.com/Adarshn09/YoutubeDownloder1/services"
	util "github.com/Adarshn09/YoutubeDownloder1/utils"
	ytdlp "github.com/Adarshn09/YoutubeDownloder1/yt-dlp"
)

// Controller exposes the HTTP surface over the service layer.
type Controller struct {
	Svc *services.Service
}

func New(svc *services.Service) *Controller {
	return &Controller{Svc: svc}
}

// GetVideoInfo handles POST /get_video_info. Accepts the URL as a form field
// or JSON body and returns the normalized metadata and format list.
func (ct *Controller) GetVideoInfo(c *gin.Context) {
	var req models.InfoRequest
	if err := c.ShouldBind(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a YouTube URL"})
		return
	}

	ref, ok := util.ValidateURL(req.URL)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid YouTube URL"})
		return
	}

	info, err := ct.Svc.GetVideoInfo(c.Request.Context(), ref)
	if err != nil {
		status, msg := mapExtractionError(err)
		log.Printf("[VideoController] Info request for %s failed: %v", ref.ID, err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, info)
}

// mapExtractionError translates classified extraction failures into an HTTP
// status and a message safe to show users.
func mapExtractionError(err error) (int, string) {
	switch {
	case errors.Is(err, ytdlp.ErrVerificationChallenge):
		return http.StatusTooManyRequests, "YouTube is asking for verification right now. Please try again in a few minutes."
	case errors.Is(err, ytdlp.ErrUnavailable):
		return http.StatusNotFound, "This video is unavailable or has been removed."
	case errors.Is(err, ytdlp.ErrFormatUnavailable):
		return http.StatusNotFound, "The requested format is not available for this video."
	case errors.Is(err, ytdlp.ErrDRMProtected):
		return http.StatusForbidden, "This video is DRM protected and cannot be downloaded."
	case errors.Is(err, ytdlp.ErrPrivateVideo):
		return http.StatusForbidden, "This video is private."
	}

	// An unclassified engine failure still means the URL could not be
	// extracted; only failures outside the engine are server errors.
	var engineErr *ytdlp.EngineError
	if errors.As(err, &engineErr) {
		return http.StatusBadRequest, "Failed to fetch video information. Please try again."
	}
	return http.StatusInternalServerError, "An unexpected error occurred. Please try again."
}
