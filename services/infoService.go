package services

import (
	"context"
	"log"
	"time"

	"github.com/Adarshn09/YoutubeDownloder1/config"
	"github.com/Adarshn09/YoutubeDownloder1/models"
	"github.com/Adarshn09/YoutubeDownloder1/storage"
	util "github.com/Adarshn09/YoutubeDownloder1/utils"
	ytdlp "github.com/Adarshn09/YoutubeDownloder1/yt-dlp"
)

// Service ties the orchestrator and the records store together behind the
// controllers. All dependencies are read-only after construction.
type Service struct {
	Store        *storage.Store
	Orchestrator *ytdlp.Orchestrator
	Cfg          *config.Config
}

func New(store *storage.Store, orch *ytdlp.Orchestrator, cfg *config.Config) *Service {
	return &Service{Store: store, Orchestrator: orch, Cfg: cfg}
}

// GetVideoInfo runs the extraction orchestration for a validated reference
// and shapes the user-facing metadata. The durable video summary is recorded
// best-effort: a persistence failure is logged and the response still goes
// out.
func (s *Service) GetVideoInfo(ctx context.Context, ref models.VideoRef) (*models.VideoInfo, error) {
	info, err := s.Orchestrator.Extract(ctx, ref.URL)
	if err != nil {
		return nil, err
	}

	s.saveVideoSummary(ctx, ref, info)

	return &models.VideoInfo{
		Title:     orUnknown(info.Title, "Unknown Title"),
		Duration:  info.Duration,
		Thumbnail: info.Thumbnail,
		Uploader:  orUnknown(info.Uploader, "Unknown"),
		ViewCount: info.ViewCount,
		Formats:   util.NormalizeFormats(info.Formats),
	}, nil
}

// saveVideoSummary upserts the durable record for a video. Never fails the
// caller.
func (s *Service) saveVideoSummary(ctx context.Context, ref models.VideoRef, info *models.RawInfo) {
	v := &storage.Video{
		VideoID:      ref.ID,
		Title:        orUnknown(info.Title, "Unknown Title"),
		Uploader:     orUnknown(info.Uploader, "Unknown"),
		Duration:     info.Duration,
		ViewCount:    info.ViewCount,
		ThumbnailURL: info.Thumbnail,
		Description:  info.Description,
	}
	if info.Timestamp > 0 {
		ts := time.Unix(info.Timestamp, 0).UTC()
		v.UploadDate = &ts
	}
	if err := s.Store.UpsertVideo(ctx, v); err != nil {
		log.Printf("[InfoService] Database error (continuing): %v", err)
	}
}

func orUnknown(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
