package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// File persists all keys in a single TOML document. Every write rewrites the
// whole file through a temp file and rename.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

var _ Store = (*File)(nil)

type fileDoc struct {
	Entries map[string]string `toml:"entries"`
}

// CorruptSuffix is appended to a store file that failed to parse.
const CorruptSuffix = ".corrupt"

// OpenFile loads the document at path. A missing file is an empty store. A
// document that does not parse is moved to path+CorruptSuffix and the store
// starts empty.
func OpenFile(path string, log *logrus.Entry) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	f := &File{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}

	var doc fileDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		entry := log.WithError(err).WithField("path", path)
		aside := path + CorruptSuffix
		if rerr := os.Rename(path, aside); rerr != nil {
			entry.WithField("rename_error", rerr).Warn("store file is corrupt and could not be moved; starting empty")
			return f, nil
		}
		entry.WithField("moved_to", aside).Warn("store file is corrupt; starting empty")
		return f, nil
	}
	for k, v := range doc.Entries {
		f.values[k] = v
	}
	return f, nil
}

// Path returns the backing file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}
	return nil
}

func (f *File) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.flush(); err != nil {
		f.values[key] = prev
		return err
	}
	return nil
}

func (f *File) Close() error { return nil }

// flush must be called with mu held.
func (f *File) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := toml.Marshal(fileDoc{Entries: f.values})
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*.toml")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
