// Package app is the composition root for bookfinder.
//
// Open turns config and prefs into a ready Env: a logrus logger writing to
// the log file, the favorites store (TOML file or SQLite), the rate limited
// catalog client and the state.Store seeded with saved favorites and the
// saved sort order. The CLI commands share this Env.
//
// Run additionally starts the optional Prometheus endpoint and blocks in
// the Bubble Tea UI until the user quits or the context is cancelled.
//
// Startup errors (bad config, unopenable store, bad catalog URL) are
// returned; nothing after startup is fatal.
package app
