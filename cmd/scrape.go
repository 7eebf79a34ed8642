package cmd

import (
	"context"
	"io"

	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/vigi-tools/internal/scraper"
	"github.com/Laisky/vigi-tools/library/config"
	"github.com/Laisky/vigi-tools/library/log"
)

var scrapeCMD = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Print the visible text of a web page as JSON",
	Long: `Complete a possibly partial URL, fetch the page once and
print a JSON envelope with a preview and the extracted text.

Partial URLs are completed to https:
  openai                -> https://openai.com/
  github.com/features   -> https://github.com/features
  /docs                 -> https://example.com/docs

A missing url argument yields the empty-url error envelope.
Failures are reported inside the envelope; the exit status stays 0.`,
	Args: cobra.MaximumNArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		if err := initialize(cmd.Context(), cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var rawURL string
		if len(args) > 0 {
			rawURL = args[0]
		}
		return runScrape(cmd.Context(), rawURL, cmd.OutOrStdout())
	},
}

func init() {
	rootCMD.AddCommand(scrapeCMD)
}

// newScraper builds the scraper from configuration.
func newScraper() *scraper.Scraper {
	return scraper.New(
		scraper.WithTimeout(config.Seconds("settings.scraper.timeout", scraper.DefaultTimeout)),
		scraper.WithUserAgent(config.String("settings.scraper.user_agent", scraper.DefaultUserAgent)),
		scraper.WithLogger(log.Logger.Named("scraper")),
	)
}

func runScrape(ctx context.Context, rawURL string, out io.Writer) error {
	return printEnvelope(out, newScraper().Fetch(ctx, rawURL))
}
