package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/Adarshn09/YoutubeDownloder1/models"
	"github.com/Adarshn09/YoutubeDownloder1/storage"
	util "github.com/Adarshn09/YoutubeDownloder1/utils"
	ws "github.com/Adarshn09/YoutubeDownloder1/websocket"
)

// DownloadResult describes a completed download still sitting in its scratch
// directory. The caller streams FilePath to the client and then removes
// ScratchDir.
type DownloadResult struct {
	FilePath   string
	FileName   string
	ScratchDir string
}

var progressPercent = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// Download runs the full download flow for a validated reference: extract
// metadata, record the attempt, fetch the media into a scratch directory and
// mark the record finished. Usage recording is best-effort throughout; only
// extraction and the fetch itself can fail the request.
func (s *Service) Download(ctx context.Context, ref models.VideoRef, formatID, requestID, clientIP, userAgent string) (*DownloadResult, error) {
	util.AcquireSlot()
	defer util.ReleaseSlot()

	ws.SendProgress(requestID, "extracting", "Fetching video information", 0)
	info, err := s.Orchestrator.Extract(ctx, ref.URL)
	if err != nil {
		return nil, err
	}
	s.saveVideoSummary(ctx, ref, info)

	scratch, err := util.NewScratchDir(s.Cfg.ScratchDir)
	if err != nil {
		return nil, err
	}

	ext := "mp4"
	if formatID == "bestaudio" {
		ext = "mp3"
	}
	recordID := s.startRecord(ctx, &storage.Download{
		VideoID:       ref.ID,
		FormatID:      formatID,
		Quality:       util.ResolveQuality(formatID, info.Formats),
		FileExtension: ext,
		IPAddress:     clientIP,
		UserAgent:     userAgent,
	})

	ws.SendProgress(requestID, "downloading", "Starting download", 0)
	outputTemplate := filepath.Join(scratch, "%(title)s.%(ext)s")
	err = s.Orchestrator.Download(ctx, ref.URL, formatSpec(formatID), outputTemplate, func(line string) {
		if m := progressPercent.FindStringSubmatch(line); m != nil {
			pct, _ := strconv.ParseFloat(m[1], 64)
			ws.SendProgress(requestID, "downloading", line, pct)
		}
	})
	if err != nil {
		s.failRecord(recordID, err.Error())
		util.RemoveScratchDir(scratch)
		return nil, err
	}

	path, err := util.FindDownloadedFile(scratch)
	if err != nil {
		s.failRecord(recordID, err.Error())
		util.RemoveScratchDir(scratch)
		return nil, err
	}

	var size int64
	if fi, statErr := os.Stat(path); statErr == nil {
		size = fi.Size()
	}
	s.finishRecord(recordID, size)
	if err := s.Store.IncrementPopularity(context.Background(), ref.ID); err != nil {
		log.Printf("[DownloadService] Popularity update failed (continuing): %v", err)
	}

	ws.SendProgress(requestID, "completed", "Download complete", 100)
	return &DownloadResult{
		FilePath:   path,
		FileName:   util.SanitizedFileName(info.Title) + filepath.Ext(path),
		ScratchDir: scratch,
	}, nil
}

// formatSpec maps a requested format ID to the selector handed to the engine.
// Concrete video formats are merged with the best audio track, with the bare
// format and "best" as fallbacks for streams that already carry audio.
func formatSpec(formatID string) string {
	switch formatID {
	case "best", "worst", "bestaudio":
		return formatID
	default:
		return fmt.Sprintf("%s+bestaudio/%s/best", formatID, formatID)
	}
}

func (s *Service) startRecord(ctx context.Context, d *storage.Download) int64 {
	id, err := s.Store.StartDownload(ctx, d)
	if err != nil {
		log.Printf("[DownloadService] Database error (continuing): %v", err)
		return 0
	}
	return id
}

// Record finalization runs on a fresh context: when the failure being
// recorded is the client disconnecting, the request context is already
// cancelled and would take the write down with it.

func (s *Service) finishRecord(id, size int64) {
	if id == 0 {
		return
	}
	if err := s.Store.FinishDownload(context.Background(), id, size); err != nil {
		log.Printf("[DownloadService] Database error (continuing): %v", err)
	}
}

func (s *Service) failRecord(id int64, msg string) {
	if id == 0 {
		return
	}
	if err := s.Store.FailDownload(context.Background(), id, msg); err != nil {
		log.Printf("[DownloadService] Database error (continuing): %v", err)
	}
}
