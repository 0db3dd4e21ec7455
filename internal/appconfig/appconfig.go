// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultDatabasePath is where the record store lives when the config omits it.
	defaultDatabasePath = "bleuboardData/bleuboard.db"
	// defaultImageDir is the root of the training image bucket.
	defaultImageDir = "bleuboardData/images"
	// defaultCaptionSlots matches the size of the sample image table.
	defaultCaptionSlots = 7
)

// Config represents the top-level application configuration.
type Config struct {
	DatabasePath string `json:"databasePath,omitempty"`
	ImageDir     string `json:"imageDir,omitempty"`
	ImageBaseURL string `json:"imageBaseURL,omitempty"`
	LogFile      string `json:"logFile,omitempty"`
	Debug        bool   `json:"debug"`
	JSONMode     bool   `json:"jsonMode"`
	CaptionSlots int    `json:"captionSlots,omitempty"`
	ConfigPath   string `json:"-"`
}

// DatabaseFilePath returns the SQLite file backing the record store.
func (c Config) DatabaseFilePath() string {
	if path := strings.TrimSpace(c.DatabasePath); path != "" {
		return path
	}
	return defaultDatabasePath
}

// ImageDirectory returns the directory training images are stored under.
func (c Config) ImageDirectory() string {
	if dir := strings.TrimSpace(c.ImageDir); dir != "" {
		return dir
	}
	return defaultImageDir
}

// ImageURLBase returns the public prefix for image previews, or "" when
// previews should resolve to local file URLs.
func (c Config) ImageURLBase() string {
	return strings.TrimRight(strings.TrimSpace(c.ImageBaseURL), "/")
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "bleuboard.log"
}

// CaptionCount returns how many caption slots a record carries.
func (c Config) CaptionCount() int {
	if c.CaptionSlots <= 0 {
		return defaultCaptionSlots
	}
	return c.CaptionSlots
}

// Validate rejects settings no command can run with and normalises
// relative paths.
func (c *Config) Validate() error {
	if c.CaptionSlots < 0 {
		return fmt.Errorf("captionSlots must not be negative, got %d", c.CaptionSlots)
	}
	if c.ImageDir != "" && !filepath.IsAbs(c.ImageDir) {
		c.ImageDir = filepath.Clean(c.ImageDir)
	}
	return nil
}
