package search

import (
	"strings"

	"github.com/five82/bookfinder/internal/catalog"
)

// Field names the single filter the interactive query targets.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
	FieldSubject
)

func (f Field) String() string {
	switch f {
	case FieldAuthor:
		return "author"
	case FieldSubject:
		return "subject"
	default:
		return "title"
	}
}

// Next cycles title → author → subject → title.
func (f Field) Next() Field {
	return (f + 1) % 3
}

// ParseField accepts the names produced by String. Unknown names map to title.
func ParseField(raw string) Field {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "author":
		return FieldAuthor
	case "subject":
		return FieldSubject
	default:
		return FieldTitle
	}
}

// ActiveQuery holds one tagged filter. Setting a field replaces whatever
// filter was there before, so at most one is ever non-empty.
type ActiveQuery struct {
	Field Field
	Text  string
}

// Set targets field with text.
func (q *ActiveQuery) Set(field Field, text string) {
	q.Field = field
	q.Text = text
}

// Clear blanks the text and keeps the targeted field.
func (q *ActiveQuery) Clear() {
	q.Text = ""
}

// IsEmpty reports whether the text is blank.
func (q ActiveQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == ""
}

// Filters converts the query into catalog filters.
func (q ActiveQuery) Filters() catalog.Query {
	switch q.Field {
	case FieldAuthor:
		return catalog.Query{Author: q.Text}
	case FieldSubject:
		return catalog.Query{Subject: q.Text}
	default:
		return catalog.Query{Title: q.Text}
	}
}

// Validate rejects a query whose filters are all blank.
func Validate(q catalog.Query) error {
	if q.IsEmpty() {
		return &ValidationError{}
	}
	return nil
}
