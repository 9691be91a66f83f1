package ytdlp

import (
	"fmt"
	"math/rand"
	"strings"
)

// Strategy is one client-identity profile presented to YouTube. The catalog
// below is swept in order; each entry varies the simulated player client, the
// innertube routing host, and which stream manifests to skip. The volatile
// parts of the fingerprint (user agent, geo country, request pacing) are
// randomized per call so no single deterministic signature can be blocklisted.
type Strategy struct {
	Name          string
	PlayerClient  string
	InnertubeHost string
	Skip          []string // sub-resources to skip, e.g. dash/hls manifests
}

// catalog is the fixed sweep order. Mobile app clients first: they see the
// fewest verification challenges. Order is never changed at runtime.
var catalog = []Strategy{
	{Name: "android", PlayerClient: "android", InnertubeHost: "youtubei.googleapis.com", Skip: []string{"dash"}},
	{Name: "ios", PlayerClient: "ios", InnertubeHost: "youtubei.googleapis.com", Skip: []string{"dash", "hls"}},
	{Name: "web", PlayerClient: "web", InnertubeHost: "www.youtube.com", Skip: []string{"dash"}},
	{Name: "mweb", PlayerClient: "mweb", InnertubeHost: "www.youtube.com", Skip: []string{"dash"}},
	{Name: "tv_embedded", PlayerClient: "tv_embedded", InnertubeHost: "www.youtube.com", Skip: nil},
}

// userAgents is the pool of realistic browser signatures.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
}

// geoCountries is the pool of geo-bypass hints.
var geoCountries = []string{"US", "GB", "CA", "DE", "FR", "NL"}

// Catalog returns a copy of the sweep order. The catalog itself is read-only
// after init; callers get a copy so they cannot reorder it.
func Catalog() []Strategy {
	out := make([]Strategy, len(catalog))
	copy(out, catalog)
	return out
}

// RandomUserAgent picks one signature from the pool.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// Args renders the strategy into yt-dlp command-line flags, with the
// randomized fingerprint parts drawn fresh on every call.
func (s Strategy) Args() []string {
	parts := []string{"player_client=" + s.PlayerClient}
	if len(s.Skip) > 0 {
		parts = append(parts, "skip="+strings.Join(s.Skip, ","))
	}
	if s.InnertubeHost != "" {
		parts = append(parts, "innertube_host="+s.InnertubeHost)
	}

	minSleep := 1 + rand.Intn(2) // 1-2s between requests
	maxSleep := minSleep + 2 + rand.Intn(3)

	return []string{
		"--extractor-args", "youtube:" + strings.Join(parts, ";"),
		"--user-agent", RandomUserAgent(),
		"--geo-bypass-country", geoCountries[rand.Intn(len(geoCountries))],
		"--sleep-interval", fmt.Sprintf("%d", minSleep),
		"--max-sleep-interval", fmt.Sprintf("%d", maxSleep),
	}
}
