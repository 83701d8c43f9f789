package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything bookfinder reads from config.toml.
type Config struct {
	CatalogURL        string
	StoreBackend      string
	StorePath         string
	LogFile           string
	LogLevel          string
	MetricsAddr       string
	RequestsPerSecond float64
}

const (
	defaultConfigPath        = "~/.config/bookfinder/config.toml"
	defaultCatalogURL        = "https://openlibrary.org"
	defaultStoreBackend      = "file"
	defaultDataDir           = "~/.local/share/bookfinder"
	defaultLogFile           = "~/.local/state/bookfinder/bookfinder.log"
	defaultLogLevel          = "info"
	defaultRequestsPerSecond = 1.0
)

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	cfg := Config{
		CatalogURL:        defaultCatalogURL,
		StoreBackend:      defaultStoreBackend,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		RequestsPerSecond: defaultRequestsPerSecond,
	}
	cfg.StorePath = defaultStorePath(cfg.StoreBackend)
	return cfg
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		CatalogURL        string   `toml:"catalog_url"`
		StoreBackend      string   `toml:"store_backend"`
		StorePath         string   `toml:"store_path"`
		LogFile           string   `toml:"log_file"`
		LogLevel          string   `toml:"log_level"`
		MetricsAddr       string   `toml:"metrics_addr"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.CatalogURL); v != "" {
		cfg.CatalogURL = v
	}

	backend := strings.ToLower(strings.TrimSpace(raw.StoreBackend))
	switch backend {
	case "":
	case "file", "sqlite":
		cfg.StoreBackend = backend
	default:
		return Config{}, fmt.Errorf("parse config: store_backend %q (want file or sqlite)", raw.StoreBackend)
	}

	cfg.StorePath = strings.TrimSpace(raw.StorePath)
	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath(cfg.StoreBackend)
	} else {
		cfg.StorePath = mustExpand(cfg.StorePath)
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if raw.RequestsPerSecond != nil {
		if *raw.RequestsPerSecond < 0 {
			return Config{}, fmt.Errorf("parse config: requests_per_second must not be negative")
		}
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}

	return cfg, nil
}

func defaultStorePath(backend string) string {
	name := "store.toml"
	if backend == "sqlite" {
		name = "store.db"
	}
	return mustExpand(defaultDataDir + "/" + name)
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
