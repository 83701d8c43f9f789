package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/bookfinder/internal/book"
	"github.com/five82/bookfinder/internal/catalog"
	"github.com/five82/bookfinder/internal/favorites"
	"github.com/five82/bookfinder/internal/logging"
	"github.com/five82/bookfinder/internal/metrics"
	"github.com/five82/bookfinder/internal/search"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Query       search.ActiveQuery
	Results     []book.Record // catalog order
	View        []book.Record // Results in Sort order
	Loading     bool
	Err         error
	Sort        search.SortKey
	Favorites   favorites.Collection
	Selected    *book.Record
	Warning     error
	LastUpdated time.Time
}

// IsFavorite reports whether r is in the snapshot's favorites.
func (s Snapshot) IsFavorite(r book.Record) bool {
	return favorites.IsFavorite(r, s.Favorites)
}

// Store coordinates every state transition. Each intent method applies one
// transition under the lock; Snapshot hands out copies.
type Store struct {
	mu        sync.RWMutex
	search    search.State
	favs      *favorites.Manager
	favorites favorites.Collection
	selected  *book.Record
	warning   error
	updated   time.Time
	started   map[uint64]time.Time
	log       *logrus.Entry
}

// New builds a Store around an already loaded favorites manager.
func New(favs *favorites.Manager, log *logrus.Entry) *Store {
	if log == nil {
		log = logging.Component(nil, "state")
	}
	return &Store{
		favs:      favs,
		favorites: favs.Items(),
		started:   make(map[uint64]time.Time),
		log:       log,
		updated:   time.Now(),
	}
}

// QueryChanged records the text typed into the search bar.
func (s *Store) QueryChanged(field search.Field, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search.Query.Set(field, text)
	s.touch()
}

// SearchRequested validates q and issues a request. The caller executes the
// request outside the lock and reports back through SearchCompleted.
func (s *Store) SearchRequested(q catalog.Query) (search.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.touch()

	req, err := s.search.Begin(q)
	if err != nil {
		metrics.ObserveSearch(metrics.OutcomeInvalid, 0)
		s.pruneStarted()
		s.log.Debug("search rejected: empty query")
		return req, err
	}
	s.started[req.Seq] = time.Now()
	s.log.WithFields(logrus.Fields{
		"request_id": req.ID,
		"seq":        req.Seq,
		"query":      q.String(),
	}).Info("search issued")
	return req, nil
}

// SearchCompleted applies resp unless a newer response was already applied.
func (s *Store) SearchCompleted(resp search.Response) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var took time.Duration
	if start, ok := s.started[resp.Seq]; ok {
		took = time.Since(start)
		delete(s.started, resp.Seq)
	}
	entry := s.log.WithFields(logrus.Fields{"request_id": resp.ID, "seq": resp.Seq})

	applied := s.search.Complete(resp)
	s.pruneStarted()
	if !applied {
		metrics.ObserveSearch(metrics.OutcomeDiscarded, took)
		entry.Debug("stale search response discarded")
		return false
	}
	s.touch()

	outcome := metrics.OutcomeOK
	var empty *search.EmptyResultError
	switch {
	case errors.As(resp.Err, &empty):
		outcome = metrics.OutcomeEmpty
		entry.Info("search returned no results")
	case resp.Err != nil:
		outcome = metrics.OutcomeError
		entry.WithError(errors.Unwrap(resp.Err)).Warn("search failed")
	default:
		entry.WithField("results", len(resp.Records)).Info("search completed")
	}
	metrics.ObserveSearch(outcome, took)
	return true
}

// Search runs one search synchronously: request, catalog call, completion.
func (s *Store) Search(ctx context.Context, client catalog.Searcher, q catalog.Query) error {
	req, err := s.SearchRequested(q)
	if err != nil {
		return err
	}
	ctx = logging.ContextWithID(ctx, req.ID)
	done := logging.Track(logging.For(ctx, s.log), "catalog search")
	resp := search.Execute(ctx, client, req)
	done()
	s.SearchCompleted(resp)
	return resp.Err
}

// SearchCleared resets the query, results and error.
func (s *Store) SearchCleared() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search.Clear()
	s.touch()
}

// SortChanged sets the display order of the results.
func (s *Store) SortChanged(k search.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search.Sort = k
	s.touch()
}

// FavoriteAdded bookmarks r. A *favorites.PersistenceWarning means the
// change is live but was not saved.
func (s *Store) FavoriteAdded(r book.Record) error {
	return s.mutateFavorites(func() (favorites.Change, error) { return s.favs.Add(r) })
}

// FavoriteRemoved drops r from the favorites.
func (s *Store) FavoriteRemoved(r book.Record) error {
	return s.mutateFavorites(func() (favorites.Change, error) { return s.favs.Remove(r) })
}

// FavoriteToggled adds r when absent and removes it otherwise.
func (s *Store) FavoriteToggled(r book.Record) error {
	return s.mutateFavorites(func() (favorites.Change, error) { return s.favs.Toggle(r) })
}

// FavoritesCleared empties the favorites and deletes the stored entry.
func (s *Store) FavoritesCleared() error {
	return s.mutateFavorites(s.favs.Clear)
}

// RecordSelected opens r in the detail view, replacing any prior selection.
func (s *Store) RecordSelected(r book.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := r.Clone()
	s.selected = &sel
	s.touch()
}

// SelectionCleared closes the detail view.
func (s *Store) SelectionCleared() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
	s.touch()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Query:       s.search.Query,
		Results:     book.CloneAll(s.search.Results),
		View:        s.search.View(),
		Loading:     s.search.Loading,
		Err:         s.search.Err,
		Sort:        s.search.Sort,
		Favorites:   favorites.Collection(book.CloneAll(s.favorites)),
		Warning:     s.warning,
		LastUpdated: s.updated,
	}
	if s.selected != nil {
		sel := s.selected.Clone()
		snap.Selected = &sel
	}
	return snap
}

// mutateFavorites applies one manager mutation under the lock. The warning
// from a failed save stays until a later write succeeds; a mutation that
// wrote nothing leaves it alone.
func (s *Store) mutateFavorites(apply func() (favorites.Change, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := apply()
	s.favorites = c.Items
	s.touch()
	metrics.ObserveFavorite(c.Op, err == nil, len(c.Items))

	if err != nil {
		s.warning = err
		var warn *favorites.PersistenceWarning
		if errors.As(err, &warn) {
			return err
		}
		return fmt.Errorf("%s favorite: %w", c.Op, err)
	}
	if c.Wrote {
		s.warning = nil
	}
	return nil
}

// pruneStarted drops timings for requests that can no longer be applied.
func (s *Store) pruneStarted() {
	done := s.search.AppliedSeq()
	for seq := range s.started {
		if seq <= done {
			delete(s.started, seq)
		}
	}
}

func (s *Store) touch() {
	s.updated = time.Now()
}
