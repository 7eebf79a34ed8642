// Package tools implements the MCP tools served by this module.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/vigi-tools/internal/news"
	"github.com/Laisky/vigi-tools/internal/scraper"
)

// APIKeyProvider extracts an API key from the request context.
type APIKeyProvider func(context.Context) string

// NewsSearcher runs one news service query.
type NewsSearcher interface {
	Search(context.Context, news.Query) news.Result
}

// PageFetcher downloads a page and extracts its text.
type PageFetcher interface {
	Fetch(context.Context, string) scraper.Result
}

// Tool exposes the capabilities required by the MCP server registration lifecycle.
type Tool interface {
	Definition() mcp.Tool
	Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
