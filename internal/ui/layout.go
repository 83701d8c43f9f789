package ui

// Layout sizes shared by the list and its chrome.
const (
	// chromeHeight is the number of lines used by header, search bar and command bar.
	chromeHeight = 3

	// LayoutCompactWidth is the width below which rows drop the author column.
	LayoutCompactWidth = 60

	// searchInputReserve is the width taken by the search bar labels.
	searchInputReserve = 24

	// searchCharLimit caps the query text length.
	searchCharLimit = 200
)
