package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/five82/cinemaflow/internal/catalog"
	"github.com/five82/cinemaflow/internal/config"
	"github.com/five82/cinemaflow/internal/kvstore"
	"github.com/five82/cinemaflow/internal/logging"
	"github.com/five82/cinemaflow/internal/prefs"
	"github.com/five82/cinemaflow/internal/settings"
	"github.com/five82/cinemaflow/internal/state"
	"github.com/five82/cinemaflow/internal/ui"
)

// Options configure the cinemaflow application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/cinemaflow/prefs.toml
	Ephemeral  bool   // keep settings in memory only
	Category   string // overrides the saved and configured category
}

// Env holds the wired dependencies shared by the TUI and the CLI commands.
type Env struct {
	Config   config.Config
	Logger   *slog.Logger
	Settings *settings.Store
	Catalog  *catalog.Client

	closer io.Closer
}

// Bootstrap loads configuration and wires logging, settings storage and the
// catalogue client.
func Bootstrap(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.Setup(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	var kv kvstore.Store = kvstore.NewFileStore(cfg.StoragePath)
	if opts.Ephemeral {
		kv = kvstore.NewMemoryStore()
	}
	store := settings.New(kv, settings.Settings{
		APIToken:     cfg.APIToken,
		PlayerDomain: cfg.PlayerDomain,
	}, logger)

	client, err := catalog.NewClient(cfg.APIBase,
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		catalog.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init catalogue client: %w", err)
	}

	return &Env{
		Config:   cfg,
		Logger:   logger,
		Settings: store,
		Catalog:  client,
		closer:   closer,
	}, nil
}

// Close releases the log file.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Run boots the cinemaflow TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Bootstrap(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)
	category := strings.TrimSpace(opts.Category)
	if category == "" {
		category = userPrefs.Category
	}

	env.Logger.Info("starting", "api", env.Catalog.BaseURL(), "category", category, "ephemeral", opts.Ephemeral)

	uiOpts := ui.Options{
		Context:   ctx,
		Catalog:   env.Catalog,
		Store:     &state.Store{},
		Settings:  env.Settings,
		Config:    &env.Config,
		ThemeName: userPrefs.Theme,
		Category:  category,
		PrefsPath: opts.PrefsPath,
		LogPath:   env.Config.LogPath,
		Logger:    env.Logger,
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	env.Logger.Info("stopped")
	return nil
}
