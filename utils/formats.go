package util

import (
	"fmt"
	"sort"

	"github.com/Adarshn09/YoutubeDownloder1/models"
)

const maxVideoFormats = 10

// Fallback entries offered when the raw listing has no usable video formats.
// yt-dlp resolves "best"/"worst" itself, so these always work.
func fallbackFormats() []models.FormatOption {
	return []models.FormatOption{
		{FormatID: "best", Quality: "Best Available", Ext: "mp4"},
		{FormatID: "worst", Quality: "Lowest Quality", Ext: "mp4"},
	}
}

// audioFormat is the synthetic audio-only entry appended to every listing.
func audioFormat() models.FormatOption {
	return models.FormatOption{FormatID: "bestaudio", Quality: "Audio Only (MP3)", Ext: "mp3"}
}

// NormalizeFormats turns yt-dlp's raw format listing into the user-facing
// quality menu: video-only/storyboard entries dropped, one entry per
// resolution label (first occurrence wins), sorted by resolution descending,
// capped at 10 video entries, with the audio-only entry always last.
func NormalizeFormats(raw []models.RawFormat) []models.FormatOption {
	type candidate struct {
		opt    models.FormatOption
		height int
	}

	var picked []candidate
	seen := map[string]bool{}

	for _, f := range raw {
		// Only an explicit "none" marks a missing video channel; yt-dlp
		// omits vcodec entirely for some usable formats.
		if f.Vcodec == "none" || f.Height <= 0 {
			continue
		}
		quality := fmt.Sprintf("%dp", f.Height)
		if seen[quality] {
			continue
		}
		seen[quality] = true

		ext := f.Ext
		if ext == "" {
			ext = "mp4"
		}
		picked = append(picked, candidate{
			opt: models.FormatOption{
				FormatID: f.FormatID,
				Quality:  quality,
				Ext:      ext,
				Filesize: f.Filesize,
				FPS:      f.FPS,
			},
			height: f.Height,
		})
	}

	var out []models.FormatOption
	if len(picked) == 0 {
		out = fallbackFormats()
	} else {
		sort.SliceStable(picked, func(i, j int) bool {
			return picked[i].height > picked[j].height
		})
		if len(picked) > maxVideoFormats {
			picked = picked[:maxVideoFormats]
		}
		out = make([]models.FormatOption, 0, len(picked)+1)
		for _, c := range picked {
			out = append(out, c.opt)
		}
	}

	return append(out, audioFormat())
}

// ResolveQuality maps a requested format_id back onto its quality label
// using the raw listing, for the download record. Synthetic IDs keep their
// own labels.
func ResolveQuality(formatID string, raw []models.RawFormat) string {
	switch formatID {
	case "bestaudio":
		return "audio"
	case "best":
		return "best"
	case "worst":
		return "worst"
	}
	for _, f := range raw {
		if f.FormatID == formatID && f.Height > 0 {
			return fmt.Sprintf("%dp", f.Height)
		}
	}
	return formatID
}
