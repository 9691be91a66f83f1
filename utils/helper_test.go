package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizedFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hello World", "hello_world"},
		{"  spaced  out  ", "spaced_out"},
		{"Emoji 🎬 Video", "emoji_video"},
		{"UPPER-case_mix 123", "upper-case_mix_123"},
		{"///***", "video"},
		{"", "video"},
		{"___already___", "already"},
	}
	for _, tt := range tests {
		if got := SanitizedFileName(tt.in); got != tt.want {
			t.Errorf("SanitizedFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewScratchDirIsolated(t *testing.T) {
	root := t.TempDir()

	a, err := NewScratchDir(root)
	if err != nil {
		t.Fatalf("NewScratchDir() error: %v", err)
	}
	b, err := NewScratchDir(root)
	if err != nil {
		t.Fatalf("NewScratchDir() error: %v", err)
	}
	if a == b {
		t.Fatal("two scratch dirs share a path")
	}

	RemoveScratchDir(a)
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Errorf("scratch dir %s still exists after removal", a)
	}
	if _, err := os.Stat(b); err != nil {
		t.Errorf("unrelated scratch dir was removed: %v", err)
	}
}

func TestFindDownloadedFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := FindDownloadedFile(dir); err == nil {
		t.Error("FindDownloadedFile() on empty dir should fail")
	}

	// Partial downloads must be ignored.
	if err := os.WriteFile(filepath.Join(dir, "video.mp4.part"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FindDownloadedFile(dir); err == nil {
		t.Error("FindDownloadedFile() should skip .part files")
	}

	want := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(want, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FindDownloadedFile(dir)
	if err != nil {
		t.Fatalf("FindDownloadedFile() error: %v", err)
	}
	if got != want {
		t.Errorf("FindDownloadedFile() = %q, want %q", got, want)
	}
}

func TestDeleteFilesOlderThan(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old")
	fresh := filepath.Join(dir, "fresh")
	for _, p := range []string{old, fresh} {
		if err := os.Mkdir(p, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatal(err)
	}

	if err := DeleteFilesOlderThan(dir, time.Hour); err != nil {
		t.Fatalf("DeleteFilesOlderThan() error: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("stale entry survived the sweep")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh entry was deleted")
	}

	// A missing directory is not an error.
	if err := DeleteFilesOlderThan(filepath.Join(dir, "gone"), time.Hour); err != nil {
		t.Errorf("missing dir: %v", err)
	}
}
