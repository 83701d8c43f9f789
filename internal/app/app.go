package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/bookfinder/internal/catalog"
	"github.com/five82/bookfinder/internal/config"
	"github.com/five82/bookfinder/internal/favorites"
	"github.com/five82/bookfinder/internal/kv"
	"github.com/five82/bookfinder/internal/logging"
	"github.com/five82/bookfinder/internal/metrics"
	"github.com/five82/bookfinder/internal/prefs"
	"github.com/five82/bookfinder/internal/search"
	"github.com/five82/bookfinder/internal/state"
	"github.com/five82/bookfinder/internal/ui"
)

// Options configure the bookfinder application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/bookfinder/prefs.toml
	Verbose    bool
	Version    string
}

// Env holds the components shared by the TUI and the CLI commands.
type Env struct {
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *logrus.Logger
	KV        kv.Store
	Favorites *favorites.Manager
	State     *state.Store
	Catalog   *catalog.Client

	closers []io.Closer
}

// Open loads config and prefs, sets up logging and opens the favorites store.
// Callers must Close the returned Env.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	logger, logCloser, err := logging.Setup(logging.Options{
		File:    cfg.LogFile,
		Level:   cfg.LogLevel,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	env := &Env{Config: cfg, Prefs: userPrefs, PrefsPath: prefsPath, Logger: logger}
	env.closers = append(env.closers, logCloser)

	store, err := kv.Open(cfg.StoreBackend, cfg.StorePath, env.Log("store"))
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	env.KV = store
	env.closers = append(env.closers, store)

	client, err := catalog.NewClient(cfg.CatalogURL, catalog.Options{
		UserAgent:         userAgent(opts.Version),
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	env.Catalog = client

	env.Favorites = favorites.Load(store, env.Log("favorites"))
	env.State = state.New(env.Favorites, env.Log("state"))

	sortKey, err := search.ParseSortKey(userPrefs.Sort)
	if err != nil {
		env.Log("app").WithError(err).Warn("ignoring saved sort preference")
		sortKey = search.SortNone
	}
	env.State.SortChanged(sortKey)

	env.Log("app").WithFields(logrus.Fields{
		"catalog": cfg.CatalogURL,
		"backend": cfg.StoreBackend,
		"store":   cfg.StorePath,
	}).Debug("environment ready")
	return env, nil
}

// Log returns a logger tagged with component.
func (e *Env) Log(component string) *logrus.Entry {
	return logging.Component(e.Logger, component)
}

// Close releases the store and the log file, in reverse order of opening.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// Run boots the bookfinder TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := metrics.Serve(ctx, env.Config.MetricsAddr, env.Log("metrics")); err != nil {
			env.Log("metrics").WithError(err).Warn("metrics server stopped")
		}
	}()

	return ui.Run(ui.Options{
		Context:   ctx,
		Catalog:   env.Catalog,
		Store:     env.State,
		ThemeName: env.Prefs.Theme,
		PrefsPath: env.PrefsPath,
		Logger:    env.Log("ui"),
	})
}

func userAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return "bookfinder/" + version
}
