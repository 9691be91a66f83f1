// Package config loads service configuration: built-in defaults, overridden
// by an optional config.toml, overridden by environment variables. The
// resulting Config is read-only after Load.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all process-wide settings.
type Config struct {
	Port         string `toml:"port"`
	DatabasePath string `toml:"database_path"`
	ScratchDir   string `toml:"scratch_dir"`
	YtdlpPath    string `toml:"ytdlp_path"`
	// CleanupMaxAge is how long leaked scratch entries survive before the
	// background sweeper removes them.
	CleanupMaxAge time.Duration `toml:"-"`
	// CleanupMaxAgeHours is the TOML/env representation of CleanupMaxAge.
	CleanupMaxAgeHours int `toml:"cleanup_max_age_hours"`
}

func defaults() *Config {
	return &Config{
		Port:               "8080",
		DatabasePath:       "data/youtube_downloader.db",
		ScratchDir:         "scratch",
		YtdlpPath:          "yt-dlp",
		CleanupMaxAgeHours: 1,
	}
}

// Load builds the configuration. A missing config file is fine; a malformed
// one is logged and ignored rather than taking the service down.
func Load() *Config {
	return load("config.toml")
}

func load(path string) *Config {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			log.Printf("[Config] Ignoring malformed %s: %v", path, err)
		}
	}

	cfg.Port = env("PORT", cfg.Port)
	cfg.DatabasePath = env("DATABASE_PATH", cfg.DatabasePath)
	cfg.ScratchDir = env("SCRATCH_DIR", cfg.ScratchDir)
	cfg.YtdlpPath = env("YTDLP_PATH", cfg.YtdlpPath)
	if v := os.Getenv("CLEANUP_MAX_AGE_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.CleanupMaxAgeHours = hours
		}
	}

	cfg.CleanupMaxAge = time.Duration(cfg.CleanupMaxAgeHours) * time.Hour
	return cfg
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
