package search

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/five82/bookfinder/internal/book"
	"github.com/five82/bookfinder/internal/catalog"
)

// MaxResults caps how many records a result set holds.
const MaxResults = catalog.ResultLimit

// Request identifies one issued catalog call.
type Request struct {
	Seq   uint64
	ID    string
	Query catalog.Query
}

// Response is the outcome of executing a Request.
type Response struct {
	Seq     uint64
	ID      string
	Records []book.Record
	Err     error
}

// State is the search half of the application state. It is not safe for
// concurrent use; state.Store serializes access.
type State struct {
	Query   ActiveQuery
	Results []book.Record
	Loading bool
	Err     error
	Sort    SortKey

	issued  uint64
	applied uint64
}

// Begin validates q and, when it has a filter, issues a new sequence number
// and marks the state as loading. The previous error is dropped so the state is
// never loading and failed at once. A validation failure clears the results
// and supersedes any request still in flight.
func (s *State) Begin(q catalog.Query) (Request, error) {
	if err := Validate(q); err != nil {
		s.Results = nil
		s.Err = err
		s.applied = s.issued
		s.Loading = false
		return Request{}, err
	}
	s.issued++
	s.Loading = true
	s.Err = nil
	return Request{Seq: s.issued, ID: uuid.NewString(), Query: q}, nil
}

// Complete applies resp when it is newer than the last applied response.
// It reports whether resp was applied; stale responses are dropped. An error
// from a response that a newer request supersedes is not surfaced.
func (s *State) Complete(resp Response) bool {
	if resp.Seq <= s.applied || resp.Seq > s.issued {
		return false
	}
	s.applied = resp.Seq
	s.Loading = s.applied < s.issued

	if resp.Err != nil {
		s.Results = nil
		if !s.Loading {
			s.Err = resp.Err
		}
		return true
	}
	s.Results = capResults(resp.Records)
	s.Err = nil
	return true
}

// Clear resets the query, results and error. Loading is left alone.
func (s *State) Clear() {
	s.Query.Clear()
	s.Results = nil
	s.Err = nil
}

// View returns the results in the current sort order.
func (s *State) View() []book.Record {
	return SortedView(s.Results, s.Sort)
}

// LatestSeq returns the most recently issued sequence number.
func (s *State) LatestSeq() uint64 {
	return s.issued
}

// AppliedSeq returns the sequence number of the last applied or superseded
// request. Nothing at or below it can still change the state.
func (s *State) AppliedSeq() uint64 {
	return s.applied
}

// Execute performs the catalog call for req exactly once and classifies the
// outcome. It does not touch any State.
func Execute(ctx context.Context, client catalog.Searcher, req Request) Response {
	resp := Response{Seq: req.Seq, ID: req.ID}
	if client == nil {
		resp.Err = &NetworkError{Err: errors.New("no catalog client configured")}
		return resp
	}
	records, err := client.Search(ctx, req.Query)
	switch {
	case err != nil:
		resp.Err = &NetworkError{Err: err}
	case len(records) == 0:
		resp.Err = &EmptyResultError{}
	default:
		resp.Records = capResults(records)
	}
	return resp
}

// Search is the synchronous form of Begin, Execute and Complete.
func Search(ctx context.Context, s *State, client catalog.Searcher, q catalog.Query) error {
	req, err := s.Begin(q)
	if err != nil {
		return err
	}
	resp := Execute(ctx, client, req)
	s.Complete(resp)
	return resp.Err
}

func capResults(records []book.Record) []book.Record {
	if len(records) > MaxResults {
		records = records[:MaxResults]
	}
	return book.CloneAll(records)
}
