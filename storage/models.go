package storage

import "time"

// Video is the durable summary of a video, upserted on every successful
// metadata extraction. Keyed by the 11-character VideoID; never duplicated.
type Video struct {
	ID           int64
	VideoID      string
	Title        string
	Uploader     string
	Duration     int
	ViewCount    int64
	ThumbnailURL string
	Description  string
	UploadDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Download records one download attempt. Created with Success=false before
// the engine runs, finalized exactly once afterwards. Never deleted.
type Download struct {
	ID            int64
	VideoID       string
	FormatID      string
	Quality       string
	FileExtension string
	FileSize      *int64
	IPAddress     string
	UserAgent     string
	Success       bool
	ErrorMessage  string
	DownloadTime  time.Time
}

// PopularVideo tracks per-video download counts. One row per video; the
// count only ever goes up.
type PopularVideo struct {
	VideoID        string
	DownloadCount  int64
	LastDownloaded time.Time
}

// Stats is the aggregate snapshot served by /api/stats.
type Stats struct {
	TotalDownloads      int64   `json:"total_downloads"`
	SuccessfulDownloads int64   `json:"successful_downloads"`
	TotalVideos         int64   `json:"total_videos"`
	SuccessRate         float64 `json:"success_rate"`
}

// PopularEntry is one row of the popular-videos listing.
type PopularEntry struct {
	VideoID        string    `json:"video_id"`
	Title          string    `json:"title"`
	Uploader       string    `json:"uploader"`
	DownloadCount  int64     `json:"download_count"`
	LastDownloaded time.Time `json:"last_downloaded"`
}

// RecentEntry is one row of the recent-downloads listing.
type RecentEntry struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Quality      string    `json:"quality"`
	DownloadTime time.Time `json:"download_time"`
}
