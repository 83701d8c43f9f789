package favorites

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/five82/bookfinder/internal/book"
	"github.com/five82/bookfinder/internal/kv"
)

// PersistenceWarning reports that a mutation succeeded in memory but could
// not be written to the store.
type PersistenceWarning struct {
	Op  string
	Err error
}

func (w *PersistenceWarning) Error() string {
	return "Favorites could not be saved; changes will be lost on exit."
}

func (w *PersistenceWarning) Unwrap() error { return w.Err }

// Manager owns the favorites collection and mirrors every mutation to a store.
type Manager struct {
	mu    sync.Mutex
	store kv.Store
	log   *logrus.Entry
	items Collection
}

// Load hydrates a Manager from store. A missing or unreadable entry yields an
// empty collection.
func Load(store kv.Store, log *logrus.Entry) *Manager {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	m := &Manager{store: store, log: log, items: Collection{}}

	raw, ok, err := store.Get(StorageKey)
	switch {
	case err != nil:
		log.WithError(err).Warn("read favorites failed; starting empty")
	case !ok:
		log.Debug("no stored favorites")
	default:
		items, err := Decode(raw)
		if err != nil {
			log.WithError(err).Warn("stored favorites are malformed; starting empty")
			break
		}
		m.items = items
		log.WithField("count", len(items)).Debug("favorites loaded")
	}
	return m
}

// Change is the outcome of one Manager mutation.
type Change struct {
	Op    string
	Items Collection
	// Wrote is false when the mutation left the collection untouched and
	// nothing was sent to the store.
	Wrote bool
}

// Add bookmarks r. Adding a record that is already a favorite does nothing.
func (m *Manager) Add(r book.Record) (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addLocked(r)
}

// Remove drops r and always writes the resulting collection.
func (m *Manager) Remove(r book.Record) (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(r)
}

// Toggle adds r when absent and removes it otherwise. The membership check
// and the mutation happen under one lock.
func (m *Manager) Toggle(r book.Record) (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if IsFavorite(r, m.items) {
		return m.removeLocked(r)
	}
	return m.addLocked(r)
}

// Clear empties the collection and deletes the store entry. On a store
// failure the collection stays empty in memory.
func (m *Manager) Clear() (Change, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = Collection{}
	c := Change{Op: "clear", Items: Collection{}, Wrote: true}
	if err := m.store.Remove(StorageKey); err != nil {
		m.log.WithError(err).Warn("clear favorites failed")
		return c, &PersistenceWarning{Op: c.Op, Err: err}
	}
	m.log.Info("favorites cleared")
	return c, nil
}

// Items returns a copy of the current collection.
func (m *Manager) Items() Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemsLocked()
}

// Contains reports whether r is bookmarked.
func (m *Manager) Contains(r book.Record) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return IsFavorite(r, m.items)
}

func (m *Manager) itemsLocked() Collection {
	out := Collection(book.CloneAll(m.items))
	if out == nil {
		out = Collection{}
	}
	return out
}

func (m *Manager) addLocked(r book.Record) (Change, error) {
	next, changed := Add(m.items, r)
	if !changed {
		return Change{Op: "add", Items: m.itemsLocked()}, nil
	}
	m.items = next
	err := m.persistLocked("add")
	return Change{Op: "add", Items: m.itemsLocked(), Wrote: true}, err
}

func (m *Manager) removeLocked(r book.Record) (Change, error) {
	m.items = Remove(m.items, r)
	err := m.persistLocked("remove")
	return Change{Op: "remove", Items: m.itemsLocked(), Wrote: true}, err
}

func (m *Manager) persistLocked(op string) error {
	raw, err := Encode(m.items)
	if err == nil {
		err = m.store.Set(StorageKey, raw)
	}
	if err != nil {
		m.log.WithError(err).WithField("op", op).Warn("persist favorites failed")
		return &PersistenceWarning{Op: op, Err: err}
	}
	m.log.WithFields(logrus.Fields{"op": op, "count": len(m.items)}).Debug("favorites saved")
	return nil
}
