// Package settings persists the user-editable API token and player domain.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/cinemaflow/internal/catalog"
	"github.com/five82/cinemaflow/internal/kvstore"
)

// StorageKey is the fixed key the record is stored under.
const StorageKey = "cinemaflow.settings"

// Settings is the persisted record.
type Settings struct {
	APIToken     string `json:"apiToken"`
	PlayerDomain string `json:"playerDomain"`
}

// ValidationError reports a rejected field on Save.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Store reads and writes Settings through a key-value store.
type Store struct {
	kv       kvstore.Store
	defaults Settings
	logger   *slog.Logger
}

// New returns a store that falls back to defaults field by field.
func New(kv kvstore.Store, defaults Settings, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, defaults: defaults, logger: logger}
}

// Defaults returns the built-in settings.
func (s *Store) Defaults() Settings {
	return s.defaults
}

// Load returns the stored settings. It never fails: a missing or unreadable
// record yields the defaults, and each blank or invalid field is replaced by
// its default.
func (s *Store) Load() Settings {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Warn("settings storage unavailable, using defaults", "error", err)
		return s.defaults
	}
	if !ok {
		return s.defaults
	}

	// Fields are decoded loosely so a wrong type only affects that field.
	var record map[string]any
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warn("stored settings are corrupted, using defaults", "error", err)
		return s.defaults
	}

	out := s.defaults
	if token, _ := record["apiToken"].(string); strings.TrimSpace(token) != "" {
		out.APIToken = strings.TrimSpace(token)
	}
	if domain, _ := record["playerDomain"].(string); catalog.IsHTTPURL(domain) {
		out.PlayerDomain = strings.TrimSpace(domain)
	}
	return out
}

// Save validates next and persists it. Nothing is written when validation
// fails.
func (s *Store) Save(next Settings) (Settings, error) {
	next.APIToken = strings.TrimSpace(next.APIToken)
	next.PlayerDomain = strings.TrimSpace(next.PlayerDomain)

	if err := validate(next); err != nil {
		return Settings{}, err
	}
	if err := s.write(next); err != nil {
		return Settings{}, err
	}
	s.logger.Info("settings saved", "player_domain", next.PlayerDomain)
	return next, nil
}

// Reset removes the stored record, so every later Load returns the defaults,
// and returns them.
func (s *Store) Reset() (Settings, error) {
	if err := s.kv.Delete(StorageKey); err != nil {
		return Settings{}, fmt.Errorf("clear settings: %w", err)
	}
	s.logger.Info("settings reset to defaults")
	return s.defaults, nil
}

func (s *Store) write(value Settings) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}

func validate(next Settings) error {
	if next.APIToken == "" {
		return &ValidationError{Field: "apiToken", Message: "API token is required"}
	}
	if next.PlayerDomain == "" {
		return &ValidationError{Field: "playerDomain", Message: "player domain is required"}
	}
	if !catalog.IsHTTPURL(next.PlayerDomain) {
		return &ValidationError{Field: "playerDomain", Message: "player domain must be an absolute http(s) URL"}
	}
	return nil
}
