package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	body = strings.ReplaceAll(body, "$DIR", dir)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, dir
}

func TestBootstrapWiresConfig(t *testing.T) {
	path, dir := writeConfig(t, `
api_base = "http://127.0.0.1:9/api/"
api_token = "cfg-token"
player_domain = "https://p.example/"
storage_path = "$DIR/storage.toml"
log_path = "$DIR/logs/cinemaflow.log"
request_timeout = 7
`)

	env, err := Bootstrap(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	defer func() { _ = env.Close() }()

	if got := env.Catalog.BaseURL(); got != "http://127.0.0.1:9/api/" {
		t.Fatalf("BaseURL = %q", got)
	}
	if env.Config.RequestTimeout != 7*time.Second {
		t.Fatalf("RequestTimeout = %v, want 7s", env.Config.RequestTimeout)
	}
	if got := env.Settings.Load().APIToken; got != "cfg-token" {
		t.Fatalf("default token = %q, want cfg-token", got)
	}

	if _, err := env.Settings.Save(env.Settings.Load()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "storage.toml")); err != nil {
		t.Fatalf("settings not persisted to storage_path: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Fatalf("log dir not created: %v", err)
	}
}

func TestBootstrapEphemeralDoesNotWrite(t *testing.T) {
	path, dir := writeConfig(t, `
storage_path = "$DIR/storage.toml"
log_path = "$DIR/cinemaflow.log"
`)

	env, err := Bootstrap(Options{ConfigPath: path, Ephemeral: true})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	defer func() { _ = env.Close() }()

	if _, err := env.Settings.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "storage.toml")); !os.IsNotExist(err) {
		t.Fatalf("ephemeral settings touched storage_path (err=%v)", err)
	}
}

func TestBootstrapRejectsInvalidAPIBase(t *testing.T) {
	path, _ := writeConfig(t, `
api_base = "ftp://example.com"
log_path = "$DIR/cinemaflow.log"
`)

	_, err := Bootstrap(Options{ConfigPath: path})
	if err == nil || !strings.Contains(err.Error(), "init catalogue client") {
		t.Fatalf("err = %v, want catalogue client error", err)
	}
}

func TestBootstrapInvalidConfig(t *testing.T) {
	path, _ := writeConfig(t, "api_base = [")

	if _, err := Bootstrap(Options{ConfigPath: path}); err == nil {
		t.Fatalf("expected parse error")
	}
}
