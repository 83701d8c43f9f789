package search

// User-facing messages for the search outcomes.
const (
	MsgEmptyQuery = "Please enter at least one search term."
	MsgNoResults  = "No results found."
	MsgNetwork    = "Something went wrong. Please try again."
)

// ValidationError means the query had no non-blank filter.
type ValidationError struct{}

func (e *ValidationError) Error() string { return MsgEmptyQuery }

// NetworkError wraps a failed catalog call (transport, status or decode).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return MsgNetwork }

func (e *NetworkError) Unwrap() error { return e.Err }

// EmptyResultError means the catalog answered with zero documents.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string { return MsgNoResults }
