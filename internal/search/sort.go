package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/five82/bookfinder/internal/book"
)

// SortKey selects the display order of a result set.
type SortKey int

const (
	SortNone SortKey = iota
	SortTitleAsc
	SortAuthorAsc
	SortYearAsc
	SortYearDesc
)

var sortNames = map[SortKey]string{
	SortNone:      "none",
	SortTitleAsc:  "title",
	SortAuthorAsc: "author",
	SortYearAsc:   "year",
	SortYearDesc:  "year-desc",
}

func (k SortKey) String() string {
	if name, ok := sortNames[k]; ok {
		return name
	}
	return "none"
}

// Label is the short description shown in the UI header.
func (k SortKey) Label() string {
	switch k {
	case SortTitleAsc:
		return "Title A-Z"
	case SortAuthorAsc:
		return "Author A-Z"
	case SortYearAsc:
		return "Oldest first"
	case SortYearDesc:
		return "Newest first"
	default:
		return "Relevance"
	}
}

// Next cycles through every key in declaration order.
func (k SortKey) Next() SortKey {
	return (k + 1) % SortKey(len(sortNames))
}

// ParseSortKey accepts the names produced by String, case-insensitively.
// A blank value is SortNone.
func ParseSortKey(raw string) (SortKey, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "none", "relevance":
		return SortNone, nil
	case "title", "title-asc":
		return SortTitleAsc, nil
	case "author", "author-asc":
		return SortAuthorAsc, nil
	case "year", "year-asc", "oldest":
		return SortYearAsc, nil
	case "year-desc", "newest":
		return SortYearDesc, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q (want none, title, author, year or year-desc)", raw)
}

// SortedView returns a sorted copy of records. The input is never reordered.
func SortedView(records []book.Record, key SortKey) []book.Record {
	view := book.CloneAll(records)
	var less func(a, b book.Record) bool
	switch key {
	case SortTitleAsc:
		less = func(a, b book.Record) bool { return a.SortTitle() < b.SortTitle() }
	case SortAuthorAsc:
		less = func(a, b book.Record) bool { return a.FirstAuthor() < b.FirstAuthor() }
	case SortYearAsc:
		less = func(a, b book.Record) bool { return a.Year() < b.Year() }
	case SortYearDesc:
		less = func(a, b book.Record) bool { return a.Year() > b.Year() }
	default:
		return view
	}
	sort.SliceStable(view, func(i, j int) bool {
		return less(view[i], view[j])
	})
	return view
}
