package util

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/Adarshn09/YoutubeDownloder1/models"
)

// videoIDPattern is the exact shape of a YouTube video ID: 11 characters
// from the restricted alphabet, nothing more.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// recognizedHosts maps supported host names (after stripping www./m./music.
// prefixes) to true. Covers the canonical domain, the short-link domain and
// the privacy-mode domain.
var recognizedHosts = map[string]bool{
	"youtube.com":          true,
	"youtu.be":             true,
	"youtube-nocookie.com": true,
}

// pathPrefixes are the path-segment forms that carry the video ID as the
// next segment.
var pathPrefixes = []string{"embed", "v", "shorts", "live", "watch"}

// ValidateURL recognizes a YouTube URL in any supported form and extracts
// its canonical reference. It performs no network or persistence calls and
// reports failure via ok=false, never an error: a non-matching URL is a user
// input problem, not a fault.
func ValidateURL(raw string) (models.VideoRef, bool) {
	id, ok := ExtractVideoID(raw)
	if !ok {
		return models.VideoRef{}, false
	}
	return models.VideoRef{ID: id, URL: CanonicalURL(id)}, true
}

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
// Supported forms: watch?v= query parameter, youtu.be short link, /embed/,
// /v/, /shorts/ and /live/ path segments, on youtube.com and
// youtube-nocookie.com with optional www./m./music. prefixes.
func ExtractVideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	// Scheme is optional in user input; url.Parse needs one to find the host.
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, prefix := range []string{"www.", "m.", "music."} {
		host = strings.TrimPrefix(host, prefix)
	}
	if !recognizedHosts[host] {
		return "", false
	}

	// Query-parameter form, on any path (watch, playlist, etc).
	if id := parsed.Query().Get("v"); id != "" {
		if videoIDPattern.MatchString(id) {
			return id, true
		}
		return "", false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", false
	}

	// Short-link form: the ID is the first path segment.
	if host == "youtu.be" {
		if videoIDPattern.MatchString(segments[0]) {
			return segments[0], true
		}
		return "", false
	}

	// Path-segment forms: /embed/ID, /v/ID, /shorts/ID, /live/ID.
	if len(segments) >= 2 {
		for _, prefix := range pathPrefixes {
			if segments[0] == prefix && videoIDPattern.MatchString(segments[1]) {
				return segments[1], true
			}
		}
	}

	return "", false
}

// CanonicalURL returns the canonical watch URL for a video ID.
func CanonicalURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
