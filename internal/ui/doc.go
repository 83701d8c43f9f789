// Package ui provides the Bubble Tea terminal interface for bookfinder.
//
// The Model renders a state.Snapshot and forwards user actions to the
// state.Store as intents. Searches run as tea.Cmds through search.Execute
// and come back as searchResultMsg values, which the store checks for
// staleness before applying.
//
// Two views share the screen: Results (the sorted search view) and
// Favorites. Tab switches between them, each keeping its own cursor.
// The detail modal shows one record and clears the store's selection
// when it closes.
package ui
