package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the upstream failure classes the service distinguishes.
// Everything not matching one of these patterns is treated as a generic
// engine failure and retried.
var (
	// ErrVerificationChallenge means the upstream demanded bot verification.
	// Retryable: a different client identity may bypass the challenge.
	ErrVerificationChallenge = errors.New("upstream requested verification")

	// ErrUnavailable means the video is removed or region-blocked.
	ErrUnavailable = errors.New("video unavailable")

	// ErrDRMProtected means the video cannot be downloaded at all.
	ErrDRMProtected = errors.New("video is DRM protected")

	// ErrFormatUnavailable means the requested format is not offered.
	ErrFormatUnavailable = errors.New("requested format not available")

	// ErrPrivateVideo means the video is private.
	ErrPrivateVideo = errors.New("private video")
)

// EngineError wraps a raw yt-dlp failure with its classified cause.
type EngineError struct {
	Cause  error  // one of the sentinels above, or nil for generic failures
	Output string // trailing yt-dlp output, for logs
	Err    error  // the underlying exec error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("yt-dlp: %v", e.Cause)
	}
	return fmt.Sprintf("yt-dlp failed: %v | output: %s", e.Err, e.Output)
}

func (e *EngineError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Err
}

// classifyOutput maps yt-dlp's error strings onto the sentinel errors.
// The patterns mirror the messages yt-dlp prints for each failure class.
func classifyOutput(output string) error {
	switch {
	case strings.Contains(output, "Sign in to confirm you're not a bot"),
		strings.Contains(output, "Sign in to confirm your age"):
		return ErrVerificationChallenge
	case strings.Contains(output, "Video unavailable"):
		return ErrUnavailable
	case strings.Contains(output, "DRM protected"):
		return ErrDRMProtected
	case strings.Contains(output, "Requested format is not available"):
		return ErrFormatUnavailable
	case strings.Contains(output, "Private video"):
		return ErrPrivateVideo
	}
	return nil
}

// IsTerminal reports whether err cannot be cured by retrying within the same
// session. Verification challenges are not terminal: a different client
// identity may get past them.
func IsTerminal(err error) bool {
	switch {
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrDRMProtected),
		errors.Is(err, ErrFormatUnavailable),
		errors.Is(err, ErrPrivateVideo),
		errors.Is(err, context.Canceled):
		return true
	}
	return false
}
