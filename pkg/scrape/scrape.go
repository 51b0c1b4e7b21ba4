// Package scrape retrieves the raw resort comparison table from a reference
// page. It performs one HTTP GET with an identifying user agent, parses every
// table in the response, and selects the one holding the resort data, either
// by fixed document position or by header-signature match.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/snowline/snowline/internal/logger"
	"github.com/snowline/snowline/pkg/fetcher"
	"github.com/snowline/snowline/pkg/table"
)

// DefaultTableIndex is the zero-based document position of the resort table
// on the reference page (the fifth table).
const DefaultTableIndex = 4

// ErrTableNotFound indicates the page held no table at the requested
// position, or no table matching the requested header signature.
var ErrTableNotFound = errors.New("table not found")

// FetchError reports a transport failure or a non-success HTTP status.
// StatusCode is zero when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Config controls raw-table extraction.
type Config struct {
	// Contact is embedded in the outbound user agent so the site operator
	// can identify and reach the caller.
	Contact string

	// Timeout bounds the single HTTP request. Defaults to 15 seconds.
	Timeout time.Duration

	// TableIndex is the zero-based position of the wanted table, used when
	// HeaderSignature is empty. The reference page keeps the resort data at
	// DefaultTableIndex.
	TableIndex int

	// HeaderSignature, when set, selects the first table whose header row
	// contains every listed name (case-insensitive substring match). This
	// survives tables being inserted above the target, unlike positional
	// selection.
	HeaderSignature []string

	// Fetcher overrides the transport. Defaults to the static fetcher.
	Fetcher fetcher.Fetcher
}

// Scraper extracts one raw table per invocation. No retries, no caching,
// no pagination.
type Scraper struct {
	config  Config
	fetcher fetcher.Fetcher
}

// UserAgent builds the identifying client string sent with the request.
func UserAgent(contact string) string {
	if contact == "" {
		return "snowline-scraper/1.0"
	}
	return fmt.Sprintf("snowline-scraper/1.0 (+%s)", contact)
}

// New creates a Scraper.
func New(cfg Config) *Scraper {
	if cfg.Timeout == 0 {
		cfg.Timeout = fetcher.DefaultTimeout
	}
	f := cfg.Fetcher
	if f == nil {
		f = fetcher.NewStatic(fetcher.StaticConfig{
			UserAgent: UserAgent(cfg.Contact),
			Timeout:   cfg.Timeout,
		})
	}
	return &Scraper{config: cfg, fetcher: f}
}

// Close releases the underlying fetcher.
func (s *Scraper) Close() error {
	return s.fetcher.Close()
}

// RawTable fetches the source page and extracts the resort table, unprocessed.
func (s *Scraper) RawTable(ctx context.Context, sourceURL string) (*table.Table, error) {
	if _, err := url.ParseRequestURI(sourceURL); err != nil {
		return nil, fmt.Errorf("invalid source URL %q: %w", sourceURL, err)
	}

	logger.Info("fetching raw table", "url", sourceURL, "fetcher", s.fetcher.Type())

	content, err := s.fetcher.Fetch(ctx, sourceURL, fetcher.Options{
		UserAgent: UserAgent(s.config.Contact),
		Timeout:   s.config.Timeout,
	})
	if err != nil {
		return nil, &FetchError{URL: sourceURL, StatusCode: content.StatusCode, Err: err}
	}
	if content.StatusCode < 200 || content.StatusCode > 299 {
		return nil, &FetchError{URL: sourceURL, StatusCode: content.StatusCode}
	}

	tables, err := table.ParseHTML(strings.NewReader(content.HTML))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", sourceURL, err)
	}
	logger.Debug("parsed page tables", "count", len(tables))

	if len(s.config.HeaderSignature) > 0 {
		return selectByHeader(tables, s.config.HeaderSignature)
	}
	return selectByIndex(tables, s.config.TableIndex)
}

// FetchRawTable is the one-shot form: single GET against sourceURL with a
// user agent identifying contact, returning the table at the default fixed
// position.
func FetchRawTable(ctx context.Context, sourceURL, contact string) (*table.Table, error) {
	s := New(Config{Contact: contact, TableIndex: DefaultTableIndex})
	defer func() { _ = s.Close() }()
	return s.RawTable(ctx, sourceURL)
}

func selectByIndex(tables []*table.Table, index int) (*table.Table, error) {
	if index < 0 || index >= len(tables) {
		return nil, fmt.Errorf("%w: page has %d tables, want index %d",
			ErrTableNotFound, len(tables), index)
	}
	return tables[index], nil
}

func selectByHeader(tables []*table.Table, signature []string) (*table.Table, error) {
	for _, t := range tables {
		if headerMatches(t.Columns, signature) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no table among %d matches header signature %v",
		ErrTableNotFound, len(tables), signature)
}

// headerMatches reports whether every signature entry appears in some column
// name, ignoring case.
func headerMatches(columns, signature []string) bool {
	for _, want := range signature {
		found := false
		for _, col := range columns {
			if strings.Contains(strings.ToLower(col), strings.ToLower(want)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
