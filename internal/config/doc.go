// Package config loads bookfinder's TOML configuration.
//
// # Resolution
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use ~/.config/bookfinder/config.toml
//  3. If the file doesn't exist, use Defaults()
//  4. Blank fields fall back to their defaults
//
// # Fields
//
//	catalog_url          = "https://openlibrary.org"
//	store_backend        = "file"        # or "sqlite"
//	store_path           = "~/.local/share/bookfinder/store.toml"  # store.db for sqlite
//	log_file             = "~/.local/state/bookfinder/bookfinder.log"
//	log_level            = "info"
//	metrics_addr         = ""            # e.g. "127.0.0.1:9464"; empty disables /metrics
//	requests_per_second  = 1.0           # 0 disables pacing
//
// Paths starting with ~ are expanded against the user's home directory and
// made absolute.
//
// # Errors
//
// A missing file is not an error. An unreadable file, invalid TOML, an
// unknown store_backend or a negative requests_per_second are returned to the
// caller; the CLI exits non-zero.
package config
