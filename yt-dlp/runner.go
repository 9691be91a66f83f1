package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/Adarshn09/YoutubeDownloder1/models"
)

const (
	defaultBinary  = "yt-dlp"
	defaultTimeout = 150 * time.Second
	socketTimeout  = 120 // seconds, passed to yt-dlp
)

// Engine is the extraction/download capability the orchestrator drives.
// BinaryEngine is the production implementation; tests substitute fakes.
type Engine interface {
	// ExtractInfo fetches metadata for url using the given client identity.
	ExtractInfo(ctx context.Context, url string, s Strategy) (*models.RawInfo, error)
	// Download writes exactly one media file matching outputTemplate.
	// formatSpec is a yt-dlp format selector; "bestaudio" triggers mp3
	// extraction. onLine, when non-nil, receives raw progress output lines.
	Download(ctx context.Context, url, formatSpec, outputTemplate string, s Strategy, onLine func(string)) error
}

// BinaryEngine runs the yt-dlp executable as a subprocess.
type BinaryEngine struct {
	Path    string
	Timeout time.Duration
}

func NewBinaryEngine(path string) *BinaryEngine {
	if path == "" {
		path = defaultBinary
	}
	return &BinaryEngine{Path: path, Timeout: defaultTimeout}
}

// baseArgs is the shared configuration every strategy is merged onto:
// conservative timeouts, per-fragment retries, lax certificates, and one
// fragment at a time to avoid burst patterns upstream flags as automation.
func baseArgs() []string {
	return []string{
		"--no-playlist",
		"--no-warnings",
		"--no-check-certificate",
		"--socket-timeout", fmt.Sprintf("%d", socketTimeout),
		"--fragment-retries", "10",
		"--concurrent-fragments", "1",
	}
}

func (e *BinaryEngine) ExtractInfo(ctx context.Context, url string, s Strategy) (*models.RawInfo, error) {
	args := append(baseArgs(), s.Args()...)
	args = append(args, "-j", url)

	cmdCtx, cancel := context.WithTimeout(ctx, e.timeout())
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, e.path(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, engineError(err, stderr.String())
	}

	var info models.RawInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("yt-dlp parse error: %w | raw: %.200s", err, stdout.String())
	}
	return &info, nil
}

func (e *BinaryEngine) Download(ctx context.Context, url, formatSpec, outputTemplate string, s Strategy, onLine func(string)) error {
	args := append(baseArgs(), s.Args()...)
	args = append(args, "--newline", "-o", outputTemplate)

	if formatSpec == "bestaudio" {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "192",
		)
	} else {
		args = append(args, "-f", formatSpec)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, e.path(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("yt-dlp stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("yt-dlp start: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	// Drain in case the scanner bailed on an oversized line.
	_, _ = io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		return engineError(err, stderr.String())
	}
	return nil
}

func (e *BinaryEngine) path() string {
	if e.Path != "" {
		return e.Path
	}
	return defaultBinary
}

func (e *BinaryEngine) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return defaultTimeout
}

// engineError classifies raw yt-dlp output into the error taxonomy.
func engineError(err error, output string) error {
	const tailLen = 400
	tail := output
	if len(tail) > tailLen {
		tail = tail[len(tail)-tailLen:]
	}
	return &EngineError{Cause: classifyOutput(output), Output: tail, Err: err}
}
