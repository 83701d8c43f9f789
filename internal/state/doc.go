// Package state holds the application state shared by the UI and the CLI.
//
// # Overview
//
// Store combines three independent pieces of state:
//
//   - search: the active query, the capped result set, its sort key and the
//     loading/error flags (package search)
//   - favorites: the bookmarked records, mirrored to a kv.Store on every
//     mutation (package favorites)
//   - selection: zero or one record shown in the detail view
//
// Every user action maps to one intent method (SearchRequested,
// FavoriteAdded, RecordSelected, ...). Each method performs one transition
// under the mutex; the UI renders from Snapshot, which returns copies.
//
// # Searches
//
// A search is split so the catalog call never runs under the lock:
//
//	req, err := store.SearchRequested(q)   // validate, seq++, loading=true
//	resp := search.Execute(ctx, client, req)
//	store.SearchCompleted(resp)             // applied only if newest
//
// The UI runs Execute inside a tea.Cmd; the CLI calls Store.Search, which does
// all three steps in sequence. Responses carry the sequence number of their
// request and anything older than the last applied response is dropped.
//
// # Favorites
//
// A failed write keeps the in-memory change and surfaces a
// *favorites.PersistenceWarning. The warning stays in Snapshot.Warning until
// the next favorites mutation that saves cleanly.
//
// # Selection
//
// RecordSelected overwrites, SelectionCleared clears. Clearing the search or
// the favorites never touches the selection.
package state
