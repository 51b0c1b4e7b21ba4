package pipeline

import (
	"time"

	"github.com/snowline/snowline/pkg/fetcher"
	"github.com/snowline/snowline/pkg/scrape"
)

type config struct {
	scrape scrape.Config
}

func defaultConfig(contact string) config {
	return config{
		scrape: scrape.Config{
			Contact:    contact,
			Timeout:    fetcher.DefaultTimeout,
			TableIndex: scrape.DefaultTableIndex,
		},
	}
}

// Option configures a pipeline run.
type Option func(*config)

// WithTimeout bounds the single HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.scrape.Timeout = d
	}
}

// WithTableIndex selects the raw table by zero-based document position.
func WithTableIndex(index int) Option {
	return func(c *config) {
		c.scrape.TableIndex = index
		c.scrape.HeaderSignature = nil
	}
}

// WithHeaderSignature selects the raw table by header match instead of
// position, surviving layout drift on the source page.
func WithHeaderSignature(signature []string) Option {
	return func(c *config) {
		c.scrape.HeaderSignature = append([]string(nil), signature...)
	}
}

// WithFetcher overrides the transport (e.g. the dynamic browser fetcher, or
// a test double).
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *config) {
		c.scrape.Fetcher = f
	}
}
