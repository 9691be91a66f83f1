package util

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRequestID returns an opaque ID correlating a download request with its
// progress websocket.
func NewRequestID() string {
	return uuid.NewString()
}

// NewScratchDir creates an isolated per-request working directory under
// root. The handling request owns it exclusively and must remove it on every
// exit path.
func NewScratchDir(root string) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scratch root '%s': %w", root, err)
	}
	dir := filepath.Join(root, uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create scratch dir: %w", err)
	}
	return dir, nil
}

// RemoveScratchDir deletes a per-request scratch directory. Failures are
// logged only; the sweeper picks up leftovers.
func RemoveScratchDir(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("[Cleanup] Failed to remove scratch dir %s: %v", dir, err)
	}
}

// FindDownloadedFile returns the single media file yt-dlp wrote into dir.
func FindDownloadedFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if !e.IsDir() && !strings.HasSuffix(e.Name(), ".part") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no file was created in %s", dir)
}

// DeleteFilesOlderThan removes entries in dir older than the given age.
// Used by the background sweeper to catch scratch dirs leaked by crashed
// requests.
func DeleteFilesOlderThan(dir string, olderThan time.Duration) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	now := time.Now()
	for _, file := range files {
		info, err := file.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > olderThan {
			path := filepath.Join(dir, file.Name())
			if err := os.RemoveAll(path); err != nil {
				log.Printf("[Cleanup] Failed to delete %s: %v", path, err)
			} else {
				log.Printf("[Cleanup] Deleted stale entry: %s", path)
			}
		}
	}
	return nil
}

// Download slots cap how many yt-dlp download processes run at once.
var downloadLimit = make(chan struct{}, 8)

// AcquireSlot blocks until a download slot is free.
func AcquireSlot() {
	downloadLimit <- struct{}{}
}

func ReleaseSlot() {
	select {
	case <-downloadLimit:
	default:
	}
}

// SlotsFull reports whether all download slots are taken (non-blocking).
func SlotsFull() bool {
	return len(downloadLimit) == cap(downloadLimit)
}

var (
	regNonASCII = regexp.MustCompile(`[^\x00-\x7F]+`)
	regSafe     = regexp.MustCompile(`[^a-z0-9\-_]`)
	regMulti    = regexp.MustCompile(`_+`)
)

// SanitizedFileName reduces a video title to a safe attachment filename.
func SanitizedFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "video"
	}

	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = regNonASCII.ReplaceAllString(name, "")
	name = regSafe.ReplaceAllString(name, "")
	name = regMulti.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "video"
	}
	return name
}
