package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_PATH", "")

	cfg := load(filepath.Join(t.TempDir(), "missing.toml"))
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.YtdlpPath != "yt-dlp" {
		t.Errorf("YtdlpPath = %q, want yt-dlp", cfg.YtdlpPath)
	}
	if cfg.CleanupMaxAge != time.Hour {
		t.Errorf("CleanupMaxAge = %v, want 1h", cfg.CleanupMaxAge)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "port = \"9999\"\nytdlp_path = \"/usr/local/bin/yt-dlp\"\ncleanup_max_age_hours = 6\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := load(path)
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.YtdlpPath != "/usr/local/bin/yt-dlp" {
		t.Errorf("YtdlpPath = %q", cfg.YtdlpPath)
	}
	if cfg.CleanupMaxAge != 6*time.Hour {
		t.Errorf("CleanupMaxAge = %v, want 6h", cfg.CleanupMaxAge)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = \"9999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "7070")

	if cfg := load(path); cfg.Port != "7070" {
		t.Errorf("Port = %q, want env override 7070", cfg.Port)
	}
}

func TestMalformedFileIgnored(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if cfg := load(path); cfg.Port != "8080" {
		t.Errorf("Port = %q, want defaults on malformed file", cfg.Port)
	}
}
