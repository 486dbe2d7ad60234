package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/cinemaflow/internal/catalog"
)

// Config captures the catalogue endpoint and the built-in defaults for user settings.
type Config struct {
	APIBase         string
	APIToken        string
	PlayerDomain    string
	DefaultCategory string
	Categories      []string
	StoragePath     string
	LogPath         string
	RequestTimeout  time.Duration
}

const (
	defaultConfigPath   = "~/.config/cinemaflow/config.toml"
	defaultStoragePath  = "~/.config/cinemaflow/storage.toml"
	defaultLogPath      = "~/.local/state/cinemaflow/cinemaflow.log"
	defaultAPIBase      = "https://api.apbugall.org/"
	defaultAPIToken     = "cinemaflow-public"
	defaultPlayerDomain = "https://player.apbugall.org/"
	defaultCategory     = "movie"
)

var defaultCategories = []string{"movie", "serial", "cartoon", "anime"}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		APIBase:         defaultAPIBase,
		APIToken:        defaultAPIToken,
		PlayerDomain:    defaultPlayerDomain,
		DefaultCategory: defaultCategory,
		Categories:      append([]string(nil), defaultCategories...),
		StoragePath:     mustExpand(defaultStoragePath),
		LogPath:         mustExpand(defaultLogPath),
	}
}

// Load locates and parses the cinemaflow config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase         string   `toml:"api_base"`
		APIToken        string   `toml:"api_token"`
		PlayerDomain    string   `toml:"player_domain"`
		DefaultCategory string   `toml:"default_category"`
		Categories      []string `toml:"categories"`
		StoragePath     string   `toml:"storage_path"`
		LogPath         string   `toml:"log_path"`
		RequestTimeout  int      `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.APIToken); v != "" {
		cfg.APIToken = v
	}
	// The player domain seeds the settings defaults, so it must itself be valid.
	if v := strings.TrimSpace(raw.PlayerDomain); catalog.IsHTTPURL(v) {
		cfg.PlayerDomain = v
	}
	if categories := cleanCategories(raw.Categories); len(categories) > 0 {
		cfg.Categories = categories
	}
	if v := strings.TrimSpace(raw.DefaultCategory); v != "" {
		cfg.DefaultCategory = v
	}
	if !containsCategory(cfg.Categories, cfg.DefaultCategory) {
		cfg.Categories = append([]string{cfg.DefaultCategory}, cfg.Categories...)
	}
	if v := strings.TrimSpace(raw.StoragePath); v != "" {
		cfg.StoragePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}

	return cfg, nil
}

// NextCategory returns the category after current in the configured cycle.
func (c Config) NextCategory(current string) string {
	if len(c.Categories) == 0 {
		return defaultCategory
	}
	for i, name := range c.Categories {
		if name == current {
			return c.Categories[(i+1)%len(c.Categories)]
		}
	}
	return c.Categories[0]
}

func cleanCategories(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || containsCategory(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func containsCategory(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
