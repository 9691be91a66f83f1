package models

// InfoRequest is the incoming body for POST /get_video_info.
type InfoRequest struct {
	URL string `json:"url" form:"url"`
}

// DownloadRequest is the incoming body for POST /download.
// RequestID is optional; when set, progress updates are pushed over the
// matching /ws/progress connection.
type DownloadRequest struct {
	URL       string `json:"url" form:"url"`
	FormatID  string `json:"format_id" form:"format_id"`
	RequestID string `json:"request_id" form:"request_id"`
}

// VideoRef is the canonical identity of a video derived from its URL.
// ID is the 11-character YouTube video ID; URL is the canonical watch URL.
type VideoRef struct {
	ID  string
	URL string
}

// RawFormat is a single format entry as reported by yt-dlp -j.
type RawFormat struct {
	FormatID string   `json:"format_id"`
	Ext      string   `json:"ext"`
	Vcodec   string   `json:"vcodec"`
	Acodec   string   `json:"acodec"`
	Height   int      `json:"height"`
	Width    int      `json:"width"`
	FPS      *float64 `json:"fps"`
	Filesize *int64   `json:"filesize"`
}

// RawInfo is the subset of yt-dlp's JSON metadata the service consumes.
type RawInfo struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Uploader    string      `json:"uploader"`
	Duration    int         `json:"duration"`
	ViewCount   int64       `json:"view_count"`
	Thumbnail   string      `json:"thumbnail"`
	Description string      `json:"description"`
	Timestamp   int64       `json:"timestamp"`
	Formats     []RawFormat `json:"formats"`
}

// FormatOption is one user-facing quality choice.
type FormatOption struct {
	FormatID string   `json:"format_id"`
	Quality  string   `json:"quality"`
	Ext      string   `json:"ext"`
	Filesize *int64   `json:"filesize"`
	FPS      *float64 `json:"fps"`
}

// VideoInfo is the response body for POST /get_video_info.
type VideoInfo struct {
	Title     string         `json:"title"`
	Duration  int            `json:"duration"`
	Thumbnail string         `json:"thumbnail"`
	Uploader  string         `json:"uploader"`
	ViewCount int64          `json:"view_count"`
	Formats   []FormatOption `json:"formats"`
}

// DownloadProgress is pushed over the progress websocket during a download.
type DownloadProgress struct {
	RequestID string  `json:"request_id"`
	Status    string  `json:"status"`            // e.g. "extracting", "downloading", "completed", "error"
	Message   string  `json:"message,omitempty"` // extra info or errors
	Progress  float64 `json:"progress"`          // 0 - 100
}
