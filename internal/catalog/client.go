package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/time/rate"

	"github.com/five82/bookfinder/internal/book"
)

// Searcher defines the catalog lookup used by the search state.
// This interface is implemented by *Client and can be replaced in tests.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]book.Record, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// Query is the set of named filters sent to the catalog. Any subset may be set;
// non-empty fields are sent as independent filters.
type Query struct {
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// IsEmpty reports whether every filter is blank.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Title) == "" &&
		strings.TrimSpace(q.Author) == "" &&
		strings.TrimSpace(q.Subject) == ""
}

// Values encodes the non-empty filters as NFC-normalized query parameters.
func (q Query) Values() url.Values {
	values := url.Values{}
	set := func(name, value string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			values.Set(name, norm.NFC.String(trimmed))
		}
	}
	set("title", q.Title)
	set("author", q.Author)
	set("subject", q.Subject)
	return values
}

// String renders the filters for logs and status lines.
func (q Query) String() string {
	parts := make([]string, 0, 3)
	for _, f := range []struct{ name, value string }{
		{"title", q.Title}, {"author", q.Author}, {"subject", q.Subject},
	} {
		if v := strings.TrimSpace(f.value); v != "" {
			parts = append(parts, fmt.Sprintf("%s=%q", f.name, v))
		}
	}
	return strings.Join(parts, " ")
}

// Client talks to the Open Library search API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	limit     int
}

const (
	DefaultBaseURL   = "https://openlibrary.org"
	defaultUserAgent = "bookfinder/0.1"
	requestTimeout   = 10 * time.Second

	// ResultLimit caps how many documents are requested per search.
	ResultLimit = 20

	searchFields = "key,title,author_name,first_publish_year,cover_i,edition_key,subject"
)

// Options tune a Client. Zero values use defaults.
type Options struct {
	UserAgent         string
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// NewClient builds a Client for the catalog at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 3)
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: userAgent,
		limiter:   limiter,
		limit:     ResultLimit,
	}, nil
}

// Search runs a single search request. It never retries.
func (c *Client) Search(ctx context.Context, q Query) ([]book.Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if q.IsEmpty() {
		return nil, fmt.Errorf("query has no filters")
	}

	values := q.Values()
	values.Set("fields", searchFields)
	values.Set("limit", strconv.Itoa(c.limit))

	rel := &url.URL{Path: "/search.json", RawQuery: values.Encode()}
	var payload SearchResponse
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return nil, err
	}
	return payload.Docs, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
