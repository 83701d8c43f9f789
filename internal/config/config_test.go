package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CatalogURL != defaultCatalogURL {
		t.Fatalf("CatalogURL = %q, want %q", cfg.CatalogURL, defaultCatalogURL)
	}
	if cfg.StoreBackend != "file" {
		t.Fatalf("StoreBackend = %q, want file", cfg.StoreBackend)
	}
	if cfg.StorePath != filepath.Join(home, ".local/share/bookfinder/store.toml") {
		t.Fatalf("StorePath = %q, want default under HOME", cfg.StorePath)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("MetricsAddr = %q, want disabled", cfg.MetricsAddr)
	}
	if cfg.RequestsPerSecond != defaultRequestsPerSecond {
		t.Fatalf("RequestsPerSecond = %v, want %v", cfg.RequestsPerSecond, defaultRequestsPerSecond)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
catalog_url = "  http://127.0.0.1:9000  "
store_backend = " SQLite "
log_file = "  ~/logs/bf.log  "
log_level = "debug"
metrics_addr = " :9464 "
requests_per_second = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CatalogURL != "http://127.0.0.1:9000" {
		t.Fatalf("CatalogURL = %q", cfg.CatalogURL)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Fatalf("StoreBackend = %q, want sqlite", cfg.StoreBackend)
	}
	if !strings.HasSuffix(cfg.StorePath, "store.db") || !strings.HasPrefix(cfg.StorePath, home) {
		t.Fatalf("StorePath = %q, want sqlite default under HOME", cfg.StorePath)
	}
	if cfg.LogFile != filepath.Join(home, "logs/bf.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" || cfg.MetricsAddr != ":9464" {
		t.Fatalf("LogLevel = %q MetricsAddr = %q", cfg.LogLevel, cfg.MetricsAddr)
	}
	if cfg.RequestsPerSecond != 0 {
		t.Fatalf("RequestsPerSecond = %v, want explicit 0 kept", cfg.RequestsPerSecond)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
catalog_url = "   "
store_path = ""
log_file = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CatalogURL != defaultCatalogURL {
		t.Fatalf("CatalogURL = %q, want %q", cfg.CatalogURL, defaultCatalogURL)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.StorePath != defaultStorePath("file") {
		t.Fatalf("StorePath = %q, want %q", cfg.StorePath, defaultStorePath("file"))
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"backend":  `store_backend = "redis"`,
		"negative": `requests_per_second = -1`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("Load returned nil error, want error")
			}
		})
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`catalog_url = [`), 0o600); err != nil {
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
