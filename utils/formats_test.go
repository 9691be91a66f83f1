package util

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/Adarshn09/YoutubeDownloder1/models"
)

func TestNormalizeFormatsDeduplicatesAndSorts(t *testing.T) {
	raw := []models.RawFormat{
		{Height: 720, Vcodec: "h264", FormatID: "22"},
		{Height: 480, Vcodec: "h264", FormatID: "18"},
		{Height: 720, Vcodec: "h264", FormatID: "95"}, // duplicate 720p, dropped
	}

	got := NormalizeFormats(raw)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []struct{ quality, id string }{
		{"720p", "22"},
		{"480p", "18"},
		{"Audio Only (MP3)", "bestaudio"},
	}
	for i, w := range wantOrder {
		if got[i].Quality != w.quality || got[i].FormatID != w.id {
			t.Errorf("[%d] = {%s %s}, want {%s %s}", i, got[i].Quality, got[i].FormatID, w.quality, w.id)
		}
	}
}

func TestNormalizeFormatsEmptyInputFallback(t *testing.T) {
	got := NormalizeFormats(nil)
	if len(got) != 3 {
		t.Fatalf("len = %d, want exactly 3 (best, worst, audio)", len(got))
	}
	if got[0].FormatID != "best" || got[1].FormatID != "worst" || got[2].FormatID != "bestaudio" {
		t.Errorf("fallback order = [%s %s %s], want [best worst bestaudio]",
			got[0].FormatID, got[1].FormatID, got[2].FormatID)
	}
}

func TestNormalizeFormatsFiltersNonVideo(t *testing.T) {
	raw := []models.RawFormat{
		{Height: 0, Vcodec: "h264", FormatID: "a"},   // no resolution
		{Height: 720, Vcodec: "none", FormatID: "b"}, // audio only
	}
	got := NormalizeFormats(raw)
	// Everything filtered away: the synthetic fallbacks kick in.
	if len(got) != 3 || got[0].FormatID != "best" {
		t.Fatalf("got %v, want fallback listing", got)
	}
}

func TestNormalizeFormatsKeepsMissingVcodec(t *testing.T) {
	// yt-dlp sometimes reports a usable video format without a vcodec field.
	raw := []models.RawFormat{
		{Height: 1080, Vcodec: "", FormatID: "c", Ext: "mp4"},
	}
	got := NormalizeFormats(raw)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (1080p + audio)", len(got))
	}
	if got[0].FormatID != "c" || got[0].Quality != "1080p" {
		t.Errorf("got[0] = %+v, want the missing-vcodec 1080p entry", got[0])
	}
}

func TestNormalizeFormatsCapsAtEleven(t *testing.T) {
	var raw []models.RawFormat
	for h := 1; h <= 30; h++ {
		raw = append(raw, models.RawFormat{Height: h * 100, Vcodec: "h264", FormatID: "f"})
	}
	got := NormalizeFormats(raw)
	if len(got) != 11 {
		t.Fatalf("len = %d, want 11 (10 video + audio)", len(got))
	}
	if got[10].FormatID != "bestaudio" {
		t.Errorf("last entry = %s, want bestaudio", got[10].FormatID)
	}
	if got[0].Quality != "3000p" {
		t.Errorf("first entry = %s, want highest resolution first", got[0].Quality)
	}
}

func TestNormalizeFormatsIdempotent(t *testing.T) {
	raw := []models.RawFormat{
		{Height: 1080, Vcodec: "vp9", FormatID: "248"},
		{Height: 720, Vcodec: "h264", FormatID: "22"},
		{Height: 360, Vcodec: "h264", FormatID: "18"},
	}
	once := NormalizeFormats(raw)

	// Feed the normalized video entries back in as raw input.
	var again []models.RawFormat
	for _, opt := range once[:len(once)-1] {
		h, err := strconv.Atoi(strings.TrimSuffix(opt.Quality, "p"))
		if err != nil {
			t.Fatalf("bad quality label %q", opt.Quality)
		}
		again = append(again, models.RawFormat{Height: h, Vcodec: "h264", FormatID: opt.FormatID, Ext: opt.Ext})
	}
	twice := NormalizeFormats(again)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestResolveQuality(t *testing.T) {
	raw := []models.RawFormat{{FormatID: "22", Height: 720, Vcodec: "h264"}}
	tests := []struct{ id, want string }{
		{"bestaudio", "audio"},
		{"best", "best"},
		{"worst", "worst"},
		{"22", "720p"},
		{"unknown", "unknown"},
	}
	for _, tt := range tests {
		if got := ResolveQuality(tt.id, raw); got != tt.want {
			t.Errorf("ResolveQuality(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
