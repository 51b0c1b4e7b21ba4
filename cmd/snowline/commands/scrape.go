package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/snowline/snowline/internal/logger"
	"github.com/snowline/snowline/internal/output"
	"github.com/snowline/snowline/pkg/fetcher"
	"github.com/snowline/snowline/pkg/pipeline"
	"github.com/snowline/snowline/pkg/resort"
	"github.com/snowline/snowline/pkg/scrape"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch and clean the resort comparison table",
	Long: `Fetch the resort comparison page, extract the raw table, and run the
cleaning pipeline.

CSV output carries the cleaned table as-is. JSON, JSONL, and YAML emit
typed records, one per resort, with validated fields.

Examples:
  # Cleaned table as CSV on stdout
  snowline scrape --contact you@example.com --format csv

  # Typed records as JSONL
  snowline scrape --contact you@example.com --format jsonl -o resorts.jsonl

  # Select the table by header names instead of page position
  snowline scrape --contact you@example.com --by-header`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()

	flags.StringP("url", "u", resort.SourceURL, "source page URL")
	flags.String("contact", "", "contact address embedded in the user agent (or SNOWLINE_CONTACT)")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "csv", "output format: json, jsonl, yaml, csv")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", fetcher.DefaultTimeout, "request timeout")
	flags.Int("table-index", scrape.DefaultTableIndex, "zero-based position of the resort table on the page")
	flags.Bool("by-header", false, "select the table by header names instead of position")

	_ = viper.BindPFlag("contact", flags.Lookup("contact"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	contact := viper.GetString("contact")
	if contact == "" {
		return fmt.Errorf("contact is required: set --contact or SNOWLINE_CONTACT")
	}

	sourceURL, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	tableIndex, _ := cmd.Flags().GetInt("table-index")
	byHeader, _ := cmd.Flags().GetBool("by-header")

	opts := []pipeline.Option{
		pipeline.WithTimeout(timeout),
		pipeline.WithTableIndex(tableIndex),
	}
	if byHeader {
		opts = append(opts, pipeline.WithHeaderSignature(resort.HeaderSignature))
	}

	fetchMode, _ := cmd.Flags().GetString("fetch-mode")
	switch fetchMode {
	case "static", "":
		// Default transport; the scraper builds it itself.
	case "dynamic":
		f, err := fetcher.NewDynamic(fetcher.DynamicConfig{
			UserAgent: scrape.UserAgent(contact),
			Timeout:   timeout,
		})
		if err != nil {
			logger.Error("failed to create dynamic fetcher", "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		opts = append(opts, pipeline.WithFetcher(f))
	default:
		return fmt.Errorf("unknown fetch mode: %s (use 'static' or 'dynamic')", fetchMode)
	}

	// Setup output
	outFile := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		outFile = f
	}

	formatStr, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(outFile, output.Format(formatStr))
	if err != nil {
		logger.Error("failed to create output writer", "format", formatStr, "error", err)
		return err
	}
	defer func() { _ = writer.Close() }()

	logInfo("scraping %s", sourceURL)

	if output.Format(formatStr) == output.FormatCSV {
		cleaned, err := pipeline.Run(ctx, sourceURL, contact, opts...)
		if err != nil {
			logError("scrape failed: %v", err)
			return err
		}
		if err := writer.Write(cleaned); err != nil {
			logger.Error("failed to write output", "error", err)
			return err
		}
		logInfo("wrote %d resorts", cleaned.NumRows())
		return nil
	}

	records, err := pipeline.RunRecords(ctx, sourceURL, contact, opts...)
	if err != nil {
		logError("scrape failed: %v", err)
		return err
	}
	items := make([]any, len(records))
	for i, rec := range records {
		items[i] = rec
	}
	if err := writer.WriteAll(items); err != nil {
		logger.Error("failed to write output", "error", err)
		return err
	}
	logInfo("wrote %d resorts", len(records))
	return nil
}
