package favorites

import (
	"encoding/json"
	"fmt"

	"github.com/five82/bookfinder/internal/book"
)

// StorageKey is the store entry holding the encoded collection.
const StorageKey = "favorites"

// Collection is an ordered list of bookmarked records, unique by non-empty key.
type Collection []book.Record

// Add appends r unless a record with the same key is already present.
// The second return value reports whether the collection changed.
func Add(c Collection, r book.Record) (Collection, bool) {
	if IsFavorite(r, c) {
		return c, false
	}
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	out = append(out, r.Clone())
	return out, true
}

// Remove drops every entry sharing r's key. A keyless r removes nothing.
func Remove(c Collection, r book.Record) Collection {
	out := make(Collection, 0, len(c))
	for _, fav := range c {
		if fav.SameAs(r) {
			continue
		}
		out = append(out, fav)
	}
	return out
}

// IsFavorite reports whether c holds a record with r's key.
func IsFavorite(r book.Record, c Collection) bool {
	for _, fav := range c {
		if fav.SameAs(r) {
			return true
		}
	}
	return false
}

// Encode serializes c as a JSON array. An empty collection encodes as "[]".
func Encode(c Collection) (string, error) {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode favorites: %w", err)
	}
	return string(data), nil
}

// Decode parses a JSON array produced by Encode.
func Decode(raw string) (Collection, error) {
	var c Collection
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}
