package book

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	coverByIDURL      = "https://covers.openlibrary.org/b/id/%d-M.jpg"
	coverByEditionURL = "https://covers.openlibrary.org/b/olid/%s-M.jpg"
	placeholderCover  = "https://placehold.co/150x200?text=No+Cover"
	detailsBaseURL    = "https://openlibrary.org"
)

// Record mirrors an Open Library search document. Only Key matters for identity;
// every other field is optional and read through the fallback helpers below.
type Record struct {
	Key              string   `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Title            string   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	AuthorNames      []string `json:"author_name,omitempty" yaml:"author_name,omitempty" toml:"author_name,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty" yaml:"first_publish_year,omitempty" toml:"first_publish_year,omitempty"`
	CoverID          int      `json:"cover_i,omitempty" yaml:"cover_i,omitempty" toml:"cover_i,omitempty"`
	EditionKey       []string `json:"edition_key,omitempty" yaml:"edition_key,omitempty" toml:"edition_key,omitempty"`
	Subjects         []string `json:"subject,omitempty" yaml:"subject,omitempty" toml:"subject,omitempty"`
}

// HasKey reports whether the record carries an identity.
func (r Record) HasKey() bool {
	return r.Key != ""
}

// SameAs reports whether both records share a non-empty key.
// Keyless records are never equal to anything, including each other.
func (r Record) SameAs(other Record) bool {
	return r.Key != "" && r.Key == other.Key
}

// SortTitle returns the title used for ordering; missing titles sort as "".
func (r Record) SortTitle() string {
	return r.Title
}

// FirstAuthor returns the first listed author or "".
func (r Record) FirstAuthor() string {
	if len(r.AuthorNames) == 0 {
		return ""
	}
	return r.AuthorNames[0]
}

// Year returns the first publish year, 0 when unknown.
func (r Record) Year() int {
	if r.FirstPublishYear < 0 {
		return 0
	}
	return r.FirstPublishYear
}

// YearLabel renders the publish year for display.
func (r Record) YearLabel() string {
	if y := r.Year(); y > 0 {
		return strconv.Itoa(y)
	}
	return "N/A"
}

// AuthorLine joins all author names for display.
func (r Record) AuthorLine() string {
	names := make([]string, 0, len(r.AuthorNames))
	for _, name := range r.AuthorNames {
		if clean := CleanText(name); clean != "" {
			names = append(names, clean)
		}
	}
	return strings.Join(names, ", ")
}

// DisplayTitle returns the sanitized title, or a placeholder when absent.
func (r Record) DisplayTitle() string {
	if title := CleanText(r.Title); title != "" {
		return title
	}
	return "Untitled"
}

// CoverURL prefers the cover id, then the first edition key, then a placeholder.
func (r Record) CoverURL() string {
	switch {
	case r.CoverID > 0:
		return fmt.Sprintf(coverByIDURL, r.CoverID)
	case len(r.EditionKey) > 0 && r.EditionKey[0] != "":
		return fmt.Sprintf(coverByEditionURL, r.EditionKey[0])
	default:
		return placeholderCover
	}
}

// DetailsURL links to the catalog page for the record, or "" without a key.
func (r Record) DetailsURL() string {
	if r.Key == "" {
		return ""
	}
	return detailsBaseURL + r.Key
}

// TopSubjects returns at most n sanitized subjects.
func (r Record) TopSubjects(n int) []string {
	out := make([]string, 0, n)
	for _, s := range r.Subjects {
		if len(out) >= n {
			break
		}
		if clean := CleanText(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// Clone returns a deep copy so containers never share slice storage.
func (r Record) Clone() Record {
	dup := r
	dup.AuthorNames = cloneStrings(r.AuthorNames)
	dup.EditionKey = cloneStrings(r.EditionKey)
	dup.Subjects = cloneStrings(r.Subjects)
	return dup
}

// CloneAll copies a slice of records.
func CloneAll(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]Record, len(records))
	for i, r := range records {
		dup[i] = r.Clone()
	}
	return dup
}

var textPolicy = bluemonday.StrictPolicy()

// CleanText strips markup and collapses whitespace in catalog-provided text.
func CleanText(value string) string {
	if value == "" {
		return ""
	}
	// StrictPolicy escapes entities; the terminal wants plain text back.
	stripped := html.UnescapeString(textPolicy.Sanitize(value))
	return strings.Join(strings.Fields(stripped), " ")
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
