// Package storage persists usage records in SQLite: video summaries,
// download attempts, popularity counters and app settings. Every write is a
// short independent statement; callers treat failures as best-effort and
// never let them abort a download already in flight.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS videos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	uploader TEXT,
	duration INTEGER,
	view_count INTEGER,
	thumbnail_url TEXT,
	description TEXT,
	upload_date TIMESTAMP,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_videos_video_id ON videos(video_id);

CREATE TABLE IF NOT EXISTS downloads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id TEXT NOT NULL REFERENCES videos(video_id),
	format_id TEXT NOT NULL,
	quality TEXT,
	file_extension TEXT,
	file_size INTEGER,
	ip_address TEXT,
	user_agent TEXT,
	success INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	download_time TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS popular_videos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id TEXT NOT NULL UNIQUE REFERENCES videos(video_id),
	download_count INTEGER NOT NULL DEFAULT 0,
	last_downloaded TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS app_settings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL UNIQUE,
	value TEXT,
	updated_at TIMESTAMP NOT NULL
);
`

// Store wraps the records database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path with
// production-safe pragmas: WAL journaling, busy timeout, foreign keys.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store for tests. MaxOpenConns(1) keeps all
// queries on the same connection (each ":memory:" connection is a separate
// database). Closed automatically via t.Cleanup.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("storage.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertVideo inserts the video summary or refreshes the mutable fields of
// an existing row. Two URLs resolving to the same video ID always land on
// the same row.
func (s *Store) UpsertVideo(ctx context.Context, v *Video) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (video_id, title, uploader, duration, view_count, thumbnail_url, description, upload_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			uploader = excluded.uploader,
			view_count = excluded.view_count,
			thumbnail_url = excluded.thumbnail_url,
			updated_at = excluded.updated_at`,
		v.VideoID, v.Title, v.Uploader, v.Duration, v.ViewCount, v.ThumbnailURL, v.Description, v.UploadDate, now, now)
	if err != nil {
		return fmt.Errorf("storage: upsert video %s: %w", v.VideoID, err)
	}
	return nil
}

// GetVideo returns the stored summary for a video ID, or sql.ErrNoRows.
func (s *Store) GetVideo(ctx context.Context, videoID string) (*Video, error) {
	var v Video
	err := s.db.QueryRowContext(ctx, `
		SELECT id, video_id, title, uploader, duration, view_count, thumbnail_url, description, created_at, updated_at
		FROM videos WHERE video_id = ?`, videoID).
		Scan(&v.ID, &v.VideoID, &v.Title, &v.Uploader, &v.Duration, &v.ViewCount, &v.ThumbnailURL, &v.Description, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// StartDownload records a download attempt before the engine runs.
// Success stays false until FinishDownload.
func (s *Store) StartDownload(ctx context.Context, d *Download) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO downloads (video_id, format_id, quality, file_extension, ip_address, user_agent, success, download_time)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		d.VideoID, d.FormatID, d.Quality, d.FileExtension, d.IPAddress, d.UserAgent, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("storage: start download: %w", err)
	}
	return res.LastInsertId()
}

// FinishDownload marks a download attempt successful and stores the size.
func (s *Store) FinishDownload(ctx context.Context, id int64, fileSize int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE downloads SET success = 1, file_size = ? WHERE id = ?`, fileSize, id)
	if err != nil {
		return fmt.Errorf("storage: finish download %d: %w", id, err)
	}
	return nil
}

// FailDownload stores the error message of a failed attempt.
func (s *Store) FailDownload(ctx context.Context, id int64, message string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE downloads SET error_message = ? WHERE id = ?`, message, id)
	if err != nil {
		return fmt.Errorf("storage: fail download %d: %w", id, err)
	}
	return nil
}

// IncrementPopularity bumps the download counter for a video in a single
// atomic statement. Concurrent downloads of the same video must never lose
// an increment, so the read-modify-write happens inside SQLite.
func (s *Store) IncrementPopularity(ctx context.Context, videoID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO popular_videos (video_id, download_count, last_downloaded)
		VALUES (?, 1, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			download_count = download_count + 1,
			last_downloaded = excluded.last_downloaded`,
		videoID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storage: increment popularity %s: %w", videoID, err)
	}
	return nil
}

// GetPopularity returns the counter row for a video, or sql.ErrNoRows.
func (s *Store) GetPopularity(ctx context.Context, videoID string) (*PopularVideo, error) {
	var p PopularVideo
	err := s.db.QueryRowContext(ctx,
		`SELECT video_id, download_count, last_downloaded FROM popular_videos WHERE video_id = ?`, videoID).
		Scan(&p.VideoID, &p.DownloadCount, &p.LastDownloaded)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Stats returns the aggregate counters. Success rate is successful/total
// x 100, rounded to two decimals, zero when nothing was downloaded yet.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM downloads),
			(SELECT COUNT(*) FROM downloads WHERE success = 1),
			(SELECT COUNT(*) FROM videos)`)
	if err := row.Scan(&st.TotalDownloads, &st.SuccessfulDownloads, &st.TotalVideos); err != nil {
		return nil, fmt.Errorf("storage: stats: %w", err)
	}
	if st.TotalDownloads > 0 {
		st.SuccessRate = math.Round(float64(st.SuccessfulDownloads)/float64(st.TotalDownloads)*100*100) / 100
	}
	return &st, nil
}

// PopularVideos lists the most downloaded videos with their summaries.
func (s *Store) PopularVideos(ctx context.Context, limit int) ([]PopularEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.video_id, v.title, v.uploader, p.download_count, p.last_downloaded
		FROM popular_videos p
		JOIN videos v ON v.video_id = p.video_id
		ORDER BY p.download_count DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: popular videos: %w", err)
	}
	defer rows.Close()

	var out []PopularEntry
	for rows.Next() {
		var e PopularEntry
		if err := rows.Scan(&e.VideoID, &e.Title, &e.Uploader, &e.DownloadCount, &e.LastDownloaded); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecentDownloads lists the latest successful downloads with their videos.
func (s *Store) RecentDownloads(ctx context.Context, limit int) ([]RecentEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.video_id, v.title, d.quality, d.download_time
		FROM downloads d
		JOIN videos v ON v.video_id = d.video_id
		WHERE d.success = 1
		ORDER BY d.download_time DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: recent downloads: %w", err)
	}
	defer rows.Close()

	var out []RecentEntry
	for rows.Next() {
		var e RecentEntry
		if err := rows.Scan(&e.VideoID, &e.Title, &e.Quality, &e.DownloadTime); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetSetting reads a key from app_settings; ok=false when absent.
func (s *Store) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting writes a key/value pair into app_settings.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storage: set setting %s: %w", key, err)
	}
	return nil
}
