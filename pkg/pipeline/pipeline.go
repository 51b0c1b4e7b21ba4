// Package pipeline composes scraping and cleaning into the one-shot batch
// transform: fetch the reference page, extract the raw resort table, and run
// the cleaning chain. Each invocation is independent; nothing is cached or
// persisted, and errors propagate unmodified to the caller.
package pipeline

import (
	"context"

	"github.com/snowline/snowline/internal/logger"
	"github.com/snowline/snowline/pkg/resort"
	"github.com/snowline/snowline/pkg/scrape"
	"github.com/snowline/snowline/pkg/table"
)

// Run fetches sourceURL, identifying the caller via contact, and returns the
// cleaned resort table. No retries, no fallback: when scraping fails the
// caller decides what to show instead.
func Run(ctx context.Context, sourceURL, contact string, opts ...Option) (*table.Table, error) {
	cfg := defaultConfig(contact)
	for _, opt := range opts {
		opt(&cfg)
	}

	s := scrape.New(cfg.scrape)
	defer func() { _ = s.Close() }()

	raw, err := s.RawTable(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("raw table extracted", "columns", raw.NumColumns(), "rows", raw.NumRows())

	cleaned, err := resort.Clean(raw)
	if err != nil {
		return nil, err
	}
	logger.Info("cleaning pipeline complete",
		"rows_in", raw.NumRows(),
		"rows_out", cleaned.NumRows())
	return cleaned, nil
}

// RunRecords runs the pipeline and converts the cleaned table to typed,
// validated records.
func RunRecords(ctx context.Context, sourceURL, contact string, opts ...Option) ([]resort.Record, error) {
	cleaned, err := Run(ctx, sourceURL, contact, opts...)
	if err != nil {
		return nil, err
	}
	return resort.FromTable(cleaned)
}
