// Package mcp serves the news and scraping tools over the Model Context
// Protocol streamable HTTP transport.
package mcp

import (
	"context"
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/vigi-tools/internal/mcp/tools"
	"github.com/Laisky/vigi-tools/library/log"
)

const (
	serverName    = "vigi-tools"
	serverVersion = "1.0.0"
)

type ctxKey string

const (
	keyAuthorization ctxKey = "authorization"
)

// Server wraps the MCP server state for the HTTP transport.
type Server struct {
	mcpServer *srv.MCPServer
	handler   http.Handler
	logger    logSDK.Logger
	toolNames []string
}

// Dependencies are the collaborators the tools delegate to. A nil entry is
// only allowed when the matching tool is disabled.
type Dependencies struct {
	NewsSearcher tools.NewsSearcher
	PageFetcher  tools.PageFetcher
	// DefaultNewsAPIKey is used when a news_search call carries no key.
	DefaultNewsAPIKey string
}

// NewServer constructs a remote MCP server exposing the enabled tools under
// a single handler.
func NewServer(deps Dependencies, settings ToolsSettings, logger logSDK.Logger) (*Server, error) {
	if !settings.NewsSearchEnabled && !settings.WebScrapeEnabled {
		return nil, errors.New("at least one mcp tool must be enabled")
	}
	if settings.NewsSearchEnabled && deps.NewsSearcher == nil {
		return nil, errors.New("news searcher is required when news_search is enabled")
	}
	if settings.WebScrapeEnabled && deps.PageFetcher == nil {
		return nil, errors.New("page fetcher is required when web_scrape is enabled")
	}
	if logger == nil {
		logger = log.Logger
	}

	hooks := newMCPHooks(logger.Named("mcp_hooks"))

	mcpServer := srv.NewMCPServer(
		serverName,
		serverVersion,
		srv.WithToolCapabilities(true),
		srv.WithInstructions("Use news_search to query NewsAPI.org and web_scrape to read the visible text of a web page."),
		srv.WithRecovery(),
		srv.WithHooks(hooks),
	)

	streamable := srv.NewStreamableHTTPServer(
		mcpServer,
		srv.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			return context.WithValue(ctx, keyAuthorization, r.Header.Get("Authorization"))
		}),
	)

	s := &Server{
		mcpServer: mcpServer,
		handler:   withHTTPLogging(streamable, logger.Named("mcp_http")),
		logger:    logger.Named("mcp"),
	}

	var enabled []tools.Tool
	if settings.NewsSearchEnabled {
		tool, err := tools.NewNewsSearchTool(deps.NewsSearcher,
			s.logger.Named(tools.NewsSearchToolName), apiKeyFromContext, deps.DefaultNewsAPIKey)
		if err != nil {
			return nil, errors.Wrap(err, "new news_search tool")
		}
		enabled = append(enabled, tool)
	}
	if settings.WebScrapeEnabled {
		tool, err := tools.NewWebScrapeTool(deps.PageFetcher, s.logger.Named(tools.WebScrapeToolName))
		if err != nil {
			return nil, errors.Wrap(err, "new web_scrape tool")
		}
		enabled = append(enabled, tool)
	}

	for _, tool := range enabled {
		def := tool.Definition()
		mcpServer.AddTool(def, tool.Handle)
		s.toolNames = append(s.toolNames, def.Name)
	}

	return s, nil
}

// Handler returns the HTTP handler that should be mounted to serve MCP traffic.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// AvailableToolNames lists the registered tools in registration order.
func (s *Server) AvailableToolNames() []string {
	return append([]string(nil), s.toolNames...)
}

func apiKeyFromContext(ctx context.Context) string {
	authHeader, _ := ctx.Value(keyAuthorization).(string)
	return extractAPIKey(authHeader)
}

func extractAPIKey(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	value := strings.TrimSpace(authHeader)
	const prefix = "Bearer "
	if strings.HasPrefix(strings.ToLower(value), strings.ToLower(prefix)) {
		return strings.TrimSpace(value[len(prefix):])
	}

	return value
}

