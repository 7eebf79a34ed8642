package tools

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"
)

// WebScrapeToolName is the registered name of the scraping tool.
const WebScrapeToolName = "web_scrape"

// WebScrapeTool implements the web_scrape MCP tool.
type WebScrapeTool struct {
	fetcher PageFetcher
	logger  logSDK.Logger
}

// NewWebScrapeTool constructs a WebScrapeTool with the provided dependencies.
func NewWebScrapeTool(fetcher PageFetcher, logger logSDK.Logger) (*WebScrapeTool, error) {
	if fetcher == nil {
		return nil, errors.New("page fetcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &WebScrapeTool{
		fetcher: fetcher,
		logger:  logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *WebScrapeTool) Definition() mcp.Tool {
	return mcp.NewTool(
		WebScrapeToolName,
		mcp.WithDescription("Fetch a web page and return its visible text. Partial URLs such as 'openai' or 'github.com/features' are completed to https URLs first."),
		mcp.WithString(
			"url",
			mcp.Required(),
			mcp.Description("Full or partial URL of the page."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the web_scrape tool. Blank input is passed through so the
// caller gets the same envelope as the command line.
func (t *WebScrapeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawURL, err := readStringArg(arguments(req), "url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := t.fetcher.Fetch(ctx, rawURL)
	payload, err := result.MarshalJSON()
	if err != nil {
		t.logger.Error("encode web_scrape result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode web_scrape response"), nil
	}

	if !result.OK() {
		t.logger.Warn("web_scrape returned error envelope",
			zap.String("url", rawURL),
			zap.String("message", result.Message))
	}

	return envelopeResult(payload, !result.OK()), nil
}
