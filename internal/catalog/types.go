package catalog

import "github.com/five82/bookfinder/internal/book"

// SearchResponse mirrors the payload returned by /search.json.
type SearchResponse struct {
	NumFound int           `json:"numFound"`
	Start    int           `json:"start"`
	Docs     []book.Record `json:"docs"`
}
