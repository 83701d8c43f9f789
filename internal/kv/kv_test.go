package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *logrus.Entry {
	logger, _ := logtest.NewNullLogger()
	return logrus.NewEntry(logger)
}

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := OpenFile(filepath.Join(dir, "store.toml"), quietLog())
	require.NoError(t, err)

	db, err := OpenSQLite(filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestStoreContract(t *testing.T) {
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get("favorites")
			require.NoError(t, err)
			assert.False(t, ok, "fresh store should be empty")

			require.NoError(t, store.Set("favorites", `[{"key":"/works/OL1W"}]`))
			v, ok, err := store.Get("favorites")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"key":"/works/OL1W"}]`, v)

			require.NoError(t, store.Set("favorites", "[]"))
			v, _, err = store.Get("favorites")
			require.NoError(t, err)
			assert.Equal(t, "[]", v)

			require.NoError(t, store.Remove("favorites"))
			_, ok, err = store.Get("favorites")
			require.NoError(t, err)
			assert.False(t, ok, "removed key should be absent")

			assert.NoError(t, store.Remove("favorites"), "removing a missing key is not an error")
		})
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	for name, store := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, store.Set(" ", "x"), ErrEmptyKey)
			_, _, err := store.Get("")
			assert.ErrorIs(t, err, ErrEmptyKey)
			assert.ErrorIs(t, store.Remove(""), ErrEmptyKey)
		})
	}
}

func TestFile_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.toml")

	first, err := OpenFile(path, quietLog())
	require.NoError(t, err)
	require.NoError(t, first.Set("favorites", "[\n  {\"key\": \"/works/OL1W\"}\n]"))
	require.NoError(t, first.Set("other", "x"))

	second, err := OpenFile(path, quietLog())
	require.NoError(t, err)
	v, ok, err := second.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[\n  {\"key\": \"/works/OL1W\"}\n]", v)

	require.NoError(t, second.Remove("favorites"))
	third, err := OpenFile(path, quietLog())
	require.NoError(t, err)
	_, ok, err = third.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_CorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.toml")
	corrupt := []byte("favorites = [oops\n")
	require.NoError(t, os.WriteFile(path, corrupt, 0o600))

	logger, hook := logtest.NewNullLogger()
	f, err := OpenFile(path, logrus.NewEntry(logger))
	require.NoError(t, err)

	_, ok, err := f.Get("favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	aside, err := os.ReadFile(path + CorruptSuffix)
	require.NoError(t, err, "corrupt document is kept next to the store")
	assert.Equal(t, corrupt, aside)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	require.NoError(t, f.Set("favorites", "[]"))
	reopened, err := OpenFile(path, quietLog())
	require.NoError(t, err)
	v, ok, err := reopened.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("favorites", "[]"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	v, ok, err := second.Get("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestMemory_SetErr(t *testing.T) {
	m := NewMemory()
	boom := errors.New("quota exceeded")
	m.SetErr(boom)

	assert.ErrorIs(t, m.Set("k", "v"), boom)
	_, ok, _ := m.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Writes())

	m.SetErr(nil)
	assert.NoError(t, m.Set("k", "v"))
	assert.Equal(t, 2, m.Writes())

	m.SetErr(boom)
	assert.ErrorIs(t, m.Remove("k"), boom)
	v, ok, _ := m.Get("k")
	assert.True(t, ok, "a failed remove keeps the value")
	assert.Equal(t, "v", v)
}

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("", filepath.Join(dir, "a.toml"), quietLog())
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open("SQLite", filepath.Join(dir, "a.db"), quietLog())
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	_ = s.Close()

	s, err = Open("memory", "", quietLog())
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open("redis", "", quietLog())
	assert.Error(t, err)
}
