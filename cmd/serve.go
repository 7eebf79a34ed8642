package cmd

import (
	"context"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Laisky/vigi-tools/internal/mcp"
	"github.com/Laisky/vigi-tools/library/config"
	"github.com/Laisky/vigi-tools/library/log"
)

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Serve both tools over MCP",
	Long: `Start an HTTP server exposing the news_search and web_scrape
tools through the Model Context Protocol streamable HTTP transport.

Routes:
  /mcp     MCP endpoint
  /health  liveness probe

news_search takes its API key from the api_key argument, then the
Authorization bearer token, then settings.news.api_key.`,
	Args: gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		if err := initialize(cmd.Context(), cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), gconfig.Shared.GetString("listen"))
	},
}

func init() {
	serveCMD.Flags().String("listen", "localhost:8080", "like `localhost:8080`")
	rootCMD.AddCommand(serveCMD)
}

func runServe(ctx context.Context, addr string) error {
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := log.Logger.Named("serve")
	server, err := mcp.NewServer(mcp.Dependencies{
		NewsSearcher:      newNewsClient(),
		PageFetcher:       newScraper(),
		DefaultNewsAPIKey: config.String("settings.news.api_key", ""),
	}, mcp.LoadToolsSettingsFromConfig(), logger)
	if err != nil {
		return errors.Wrap(err, "new mcp server")
	}

	logger.Info("mcp tools registered", zap.Strings("tools", server.AvailableToolNames()))
	return mcp.RunServer(ctx, addr, mcp.NewRouter(server, logger), logger)
}
