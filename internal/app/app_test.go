package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/bookfinder/internal/book"
	"github.com/five82/bookfinder/internal/favorites"
	"github.com/five82/bookfinder/internal/prefs"
	"github.com/five82/bookfinder/internal/search"
)

func writeConfig(t *testing.T, dir, backend string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	content := "catalog_url = \"http://127.0.0.1:1\"\n" +
		"store_backend = \"" + backend + "\"\n" +
		"store_path = \"" + filepath.Join(dir, "store."+backend) + "\"\n" +
		"log_file = \"" + filepath.Join(dir, "bookfinder.log") + "\"\n" +
		"requests_per_second = 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestOpenPersistsFavoritesAcrossSessions(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			opts := Options{
				ConfigPath: writeConfig(t, dir, backend),
				PrefsPath:  filepath.Join(dir, "prefs.toml"),
			}

			env, err := Open(opts)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			r := book.Record{Key: "/works/OL893415W", Title: "Dune"}
			if err := env.State.FavoriteAdded(r); err != nil {
				t.Fatalf("FavoriteAdded: %v", err)
			}
			if err := env.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			env, err = Open(opts)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer env.Close()
			favs := env.State.Snapshot().Favorites
			if len(favs) != 1 || favs[0].Key != r.Key {
				t.Fatalf("favorites after reopen = %#v", favs)
			}
			if _, ok, _ := env.KV.Get(favorites.StorageKey); !ok {
				t.Fatalf("favorites entry missing from %s store", backend)
			}
		})
	}
}

func TestOpenAppliesSavedSort(t *testing.T) {
	dir := t.TempDir()
	prefsPath := filepath.Join(dir, "prefs.toml")
	if err := prefs.Save(prefsPath, prefs.Prefs{Theme: "Parchment", Sort: "year-desc"}); err != nil {
		t.Fatalf("save prefs: %v", err)
	}

	env, err := Open(Options{ConfigPath: writeConfig(t, dir, "file"), PrefsPath: prefsPath})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	if got := env.State.Snapshot().Sort; got != search.SortYearDesc {
		t.Fatalf("sort = %v, want year-desc", got)
	}
	if env.Prefs.Theme != "Parchment" {
		t.Fatalf("theme = %q, want Parchment", env.Prefs.Theme)
	}
}

func TestOpenIgnoresUnknownSavedSort(t *testing.T) {
	dir := t.TempDir()
	prefsPath := filepath.Join(dir, "prefs.toml")
	if err := os.WriteFile(prefsPath, []byte("sort = \"shelf\"\n"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	env, err := Open(Options{ConfigPath: writeConfig(t, dir, "file"), PrefsPath: prefsPath})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer env.Close()

	if got := env.State.Snapshot().Sort; got != search.SortNone {
		t.Fatalf("sort = %v, want none", got)
	}
}

func TestOpenRecoversFromCorruptStore(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "store.file")
	if err := os.WriteFile(storePath, []byte("favorites = [oops\n"), 0o644); err != nil {
		t.Fatalf("write store: %v", err)
	}

	env, err := Open(Options{ConfigPath: writeConfig(t, dir, "file"), PrefsPath: filepath.Join(dir, "prefs.toml")})
	if err != nil {
		t.Fatalf("Open with corrupt store: %v", err)
	}
	defer env.Close()

	if favs := env.State.Snapshot().Favorites; len(favs) != 0 {
		t.Fatalf("favorites = %#v, want empty", favs)
	}
	if _, err := os.Stat(storePath + ".corrupt"); err != nil {
		t.Fatalf("corrupt store not moved aside: %v", err)
	}
	if err := env.State.FavoriteAdded(book.Record{Key: "/works/OL893415W", Title: "Dune"}); err != nil {
		t.Fatalf("FavoriteAdded after recovery: %v", err)
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("store_backend = \"redis\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Open(Options{ConfigPath: path, PrefsPath: filepath.Join(dir, "prefs.toml")}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestUserAgent(t *testing.T) {
	if got := userAgent(""); got != "bookfinder/dev" {
		t.Fatalf("userAgent(\"\") = %q", got)
	}
	if got := userAgent("1.2.0"); got != "bookfinder/1.2.0" {
		t.Fatalf("userAgent(1.2.0) = %q", got)
	}
}
