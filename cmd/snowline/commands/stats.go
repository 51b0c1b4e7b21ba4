package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/snowline/snowline/internal/logger"
	"github.com/snowline/snowline/internal/output"
	"github.com/snowline/snowline/pkg/analysis"
	"github.com/snowline/snowline/pkg/clean"
	"github.com/snowline/snowline/pkg/fetcher"
	"github.com/snowline/snowline/pkg/pipeline"
	"github.com/snowline/snowline/pkg/resort"
	"github.com/snowline/snowline/pkg/table"
)

// statsReport is the serialized output of the stats command.
type statsReport struct {
	Resorts               int                      `json:"resorts"`
	Columns               []analysis.ColumnSummary `json:"columns"`
	MeanSnowfallByState   []analysis.GroupMean     `json:"mean_snowfall_by_state"`
	MeanSnowfallByRegion  []analysis.GroupMean     `json:"mean_snowfall_by_region,omitempty"`
	TopBySnowfall         []resort.Record          `json:"top_by_snowfall,omitempty"`
	ElevationSnowfallCorr *float64                 `json:"peak_elevation_snowfall_correlation,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the cleaned resort dataset",
	Long: `Compute summary statistics over the cleaned dataset: per-column counts
and means, mean snowfall by state and region, the snowiest resorts, and
the correlation between peak elevation and snowfall.

The dataset comes either from a previously saved CSV (--input) or from
a fresh scrape of the source page.

Examples:
  # From a saved CSV
  snowline stats --input resorts.csv --top 10

  # Scrape fresh and summarize
  snowline stats --contact you@example.com`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	flags := statsCmd.Flags()

	flags.StringP("input", "i", "", "cleaned dataset CSV (when empty, scrapes the source page)")
	flags.StringP("url", "u", resort.SourceURL, "source page URL (ignored with --input)")
	flags.String("contact", "", "contact address embedded in the user agent (or SNOWLINE_CONTACT)")
	flags.Duration("timeout", fetcher.DefaultTimeout, "request timeout")
	flags.IntP("top", "t", 5, "number of snowiest resorts to report")

	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "report format: json, yaml")

	_ = viper.BindPFlag("contact", flags.Lookup("contact"))
}

func runStats(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cleaned, err := loadDataset(ctx, cmd)
	if err != nil {
		logError("loading dataset: %v", err)
		return err
	}
	logger.Debug("dataset loaded", "rows", cleaned.NumRows())

	topN, _ := cmd.Flags().GetInt("top")

	report := statsReport{Resorts: cleaned.NumRows()}

	report.Columns, err = analysis.Summarize(cleaned, resort.NumericColumns...)
	if err != nil {
		return err
	}
	report.MeanSnowfallByState, err = analysis.MeanSnowfallByState(cleaned)
	if err != nil {
		return err
	}

	// Region breakdown and top-N need typed records; a dataset with states
	// outside the known set still gets the column and state summaries.
	records, err := resort.FromTable(cleaned)
	if err != nil {
		logger.Warn("skipping region and top-N summaries", "error", err)
	} else {
		report.MeanSnowfallByRegion = analysis.MeanSnowfallByRegion(records)
		report.TopBySnowfall = analysis.TopBySnowfall(records, topN)
	}

	if corr, err := analysis.Correlation(cleaned, resort.ColPeakElevation, resort.ColSnowfall); err != nil {
		logger.Debug("correlation unavailable", "error", err)
	} else {
		report.ElevationSnowfallCorr = &corr
	}

	for i, rec := range report.TopBySnowfall {
		logInfo("%2d. %-35s %s in", i+1, rec.Name, humanize.Commaf(rec.SnowfallInches))
	}

	// Write the report
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
	format := output.Format(formatStr)
	if format != output.FormatJSON && format != output.FormatYAML {
		return fmt.Errorf("unsupported report format: %s (use 'json' or 'yaml')", formatStr)
	}
	writer, err := output.NewWriter(outFile, format)
	if err != nil {
		return err
	}
	defer func() { _ = writer.Close() }()

	return writer.Write(report)
}

// loadDataset reads the cleaned table from --input, or scrapes and cleans the
// source page when no input file is given. CSV cells come back as text, so
// the numeric columns are re-coerced after reading.
func loadDataset(ctx context.Context, cmd *cobra.Command) (*table.Table, error) {
	inputPath, _ := cmd.Flags().GetString("input")
	if inputPath != "" {
		f, err := os.Open(inputPath) //#nosec G304 -- CLI tool reads a user-specified file
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()

		t, err := table.ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", inputPath, err)
		}
		return clean.CoerceNumeric{Columns: resort.NumericColumns}.Apply(t)
	}

	contact := viper.GetString("contact")
	if contact == "" {
		return nil, fmt.Errorf("contact is required: set --contact or SNOWLINE_CONTACT")
	}
	sourceURL, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	return pipeline.Run(ctx, sourceURL, contact, pipeline.WithTimeout(timeout))
}
