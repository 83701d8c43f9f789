package search

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/bookfinder/internal/book"
)

func mixedRecords() []book.Record {
	return []book.Record{
		{Key: "a", Title: "dune", AuthorNames: []string{"Herbert"}, FirstPublishYear: 1965},
		{Key: "b", Title: "Foundation", AuthorNames: []string{"Asimov"}, FirstPublishYear: 1951},
		{Key: "c", AuthorNames: nil, FirstPublishYear: 0},
		{Key: "d", Title: "Anathem", AuthorNames: []string{"Stephenson"}, FirstPublishYear: 2008},
		{Key: "e", Title: "Hyperion", AuthorNames: []string{"Simmons"}, FirstPublishYear: 1989},
	}
}

func keys(records []book.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Key
	}
	return out
}

func TestSortedView_PreservesMultiset(t *testing.T) {
	input := mixedRecords()
	for _, key := range []SortKey{SortNone, SortTitleAsc, SortAuthorAsc, SortYearAsc, SortYearDesc} {
		view := SortedView(input, key)
		require.Len(t, view, len(input), key.String())
		got := keys(view)
		sort.Strings(got)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got, key.String())
	}
	assert.Equal(t, mixedRecords(), input, "input must not be reordered")
}

func TestSortedView_TitleNonDecreasing(t *testing.T) {
	view := SortedView(mixedRecords(), SortTitleAsc)
	for i := 1; i < len(view); i++ {
		assert.LessOrEqual(t, view[i-1].SortTitle(), view[i].SortTitle())
	}
	// Missing title sorts first; byte order puts upper case before lower case.
	assert.Equal(t, []string{"c", "d", "b", "e", "a"}, keys(view))
}

func TestSortedView_NoneIsIdentity(t *testing.T) {
	assert.Equal(t, keys(mixedRecords()), keys(SortedView(mixedRecords(), SortNone)))
}

func TestSortedView_AuthorAndYear(t *testing.T) {
	assert.Equal(t, []string{"c", "b", "a", "e", "d"}, keys(SortedView(mixedRecords(), SortAuthorAsc)))
	assert.Equal(t, []string{"c", "b", "a", "e", "d"}, keys(SortedView(mixedRecords(), SortYearAsc)))
	assert.Equal(t, []string{"d", "e", "a", "b", "c"}, keys(SortedView(mixedRecords(), SortYearDesc)))
}

func TestSortedView_Stable(t *testing.T) {
	records := []book.Record{
		{Key: "x1", FirstPublishYear: 2000},
		{Key: "x2", FirstPublishYear: 1990},
		{Key: "x3", FirstPublishYear: 2000},
	}
	assert.Equal(t, []string{"x2", "x1", "x3"}, keys(SortedView(records, SortYearAsc)))
	assert.Equal(t, []string{"x1", "x3", "x2"}, keys(SortedView(records, SortYearDesc)))
}

func TestSortedView_Empty(t *testing.T) {
	assert.Empty(t, SortedView(nil, SortTitleAsc))
}

func TestSortKey_ParseAndCycle(t *testing.T) {
	for _, key := range []SortKey{SortNone, SortTitleAsc, SortAuthorAsc, SortYearAsc, SortYearDesc} {
		parsed, err := ParseSortKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}
	parsed, err := ParseSortKey(" Newest ")
	require.NoError(t, err)
	assert.Equal(t, SortYearDesc, parsed)

	_, err = ParseSortKey("pages")
	assert.Error(t, err)

	assert.Equal(t, SortTitleAsc, SortNone.Next())
	assert.Equal(t, SortNone, SortYearDesc.Next())
}
