package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Laisky/errors/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/vigi-tools/cmd/tui"
	"github.com/Laisky/vigi-tools/internal/news"
	"github.com/Laisky/vigi-tools/library/config"
	"github.com/Laisky/vigi-tools/library/log"
)

var newsCMD = &cobra.Command{
	Use:   "news",
	Short: "Query NewsAPI.org interactively",
	Long: `Prompt for an endpoint, an API key and the query options,
fetch the matching articles from NewsAPI.org, print them as a
numbered list and then print the JSON result envelope.

Keyboard shortcuts:
  ↑/↓ or j/k  Navigate options
  Enter       Confirm
  Esc         Cancel`,
	Args: gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if err := initialize(cmd.Context(), cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNews(cmd.Context(), tui.NewPrompter(), cmd.OutOrStdout())
	},
}

func init() {
	rootCMD.AddCommand(newsCMD)
}

// newNewsClient builds the news client from configuration.
func newNewsClient() *news.Client {
	return news.NewClient(
		news.WithBaseURL(config.String("settings.news.base_url", news.DefaultBaseURL)),
		news.WithTimeout(config.Seconds("settings.news.timeout", news.DefaultTimeout)),
		news.WithLogger(log.Logger.Named("news")),
	)
}

func runNews(ctx context.Context, prompter news.Prompter, out io.Writer) error {
	tool, err := news.NewTool(newNewsClient(), log.Logger.Named("news_tool"), news.Defaults{
		APIKey: config.String("settings.news.api_key", ""),
	})
	if err != nil {
		return errors.Wrap(err, "new news tool")
	}

	result, err := tool.Run(ctx, prompter, out)
	if err != nil {
		if errors.Is(err, news.ErrPromptAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}
		return errors.Wrap(err, "run news tool")
	}

	return printEnvelope(out, result)
}

// printEnvelope writes the JSON envelope followed by a newline.
func printEnvelope(out io.Writer, v json.Marshaler) error {
	payload, err := v.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encode result")
	}

	if _, err := fmt.Fprintln(out, string(payload)); err != nil {
		return errors.Wrap(err, "write result")
	}

	return nil
}
