package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.APIToken != defaultAPIToken {
		t.Fatalf("APIToken = %q, want %q", cfg.APIToken, defaultAPIToken)
	}
	if cfg.DefaultCategory != "movie" {
		t.Fatalf("DefaultCategory = %q, want movie", cfg.DefaultCategory)
	}
	wantStorage, err := expandPath(defaultStoragePath)
	if err != nil {
		t.Fatalf("expandPath(defaultStoragePath) returned error: %v", err)
	}
	if cfg.StoragePath != wantStorage {
		t.Fatalf("StoragePath = %q, want %q", cfg.StoragePath, wantStorage)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0 (transport default)", cfg.RequestTimeout)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  https://catalog.example/api/  "
api_token = " abc "
player_domain = "https://p.example/"
default_category = "anime"
categories = ["movie", " serial ", "", "movie"]
storage_path = "~/kv.toml"
request_timeout = 7
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "https://catalog.example/api/" {
		t.Fatalf("APIBase = %q", cfg.APIBase)
	}
	if cfg.APIToken != "abc" {
		t.Fatalf("APIToken = %q, want abc", cfg.APIToken)
	}
	if cfg.PlayerDomain != "https://p.example/" {
		t.Fatalf("PlayerDomain = %q", cfg.PlayerDomain)
	}
	if got := strings.Join(cfg.Categories, ","); got != "anime,movie,serial" {
		t.Fatalf("Categories = %q, want anime,movie,serial", got)
	}
	if cfg.StoragePath != filepath.Join(home, "kv.toml") {
		t.Fatalf("StoragePath = %q, want it under HOME", cfg.StoragePath)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Fatalf("RequestTimeout = %v, want 7s", cfg.RequestTimeout)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
api_token = ""
player_domain = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase || cfg.APIToken != defaultAPIToken || cfg.PlayerDomain != defaultPlayerDomain {
		t.Fatalf("cfg = %#v, want built-in defaults", cfg)
	}
}

func TestLoad_InvalidPlayerDomainUsesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, domain := range []string{"not a url", "ftp://player.example/", "/relative/path"} {
		path := filepath.Join(t.TempDir(), "config.toml")
		body := "player_domain = \"" + domain + "\"\n"
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) returned error: %v", domain, err)
		}
		if cfg.PlayerDomain != defaultPlayerDomain {
			t.Fatalf("PlayerDomain = %q for %q, want %q", cfg.PlayerDomain, domain, defaultPlayerDomain)
		}
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestNextCategory(t *testing.T) {
	cfg := Config{Categories: []string{"movie", "serial"}}
	if got := cfg.NextCategory("movie"); got != "serial" {
		t.Fatalf("NextCategory(movie) = %q, want serial", got)
	}
	if got := cfg.NextCategory("serial"); got != "movie" {
		t.Fatalf("NextCategory(serial) = %q, want movie", got)
	}
	if got := cfg.NextCategory("other"); got != "movie" {
		t.Fatalf("NextCategory(other) = %q, want movie", got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
