package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/vigi-tools/internal/news"
)

// NewsSearchToolName is the registered name of the news tool.
const NewsSearchToolName = "news_search"

// NewsSearchTool implements the news_search MCP tool.
type NewsSearchTool struct {
	searcher       NewsSearcher
	logger         logSDK.Logger
	apiKeyProvider APIKeyProvider
	defaultAPIKey  string
}

// NewNewsSearchTool constructs a NewsSearchTool. defaultAPIKey is used when
// neither the arguments nor the request carry a key.
func NewNewsSearchTool(searcher NewsSearcher, logger logSDK.Logger, apiKeyProvider APIKeyProvider, defaultAPIKey string) (*NewsSearchTool, error) {
	if searcher == nil {
		return nil, errors.New("news searcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if apiKeyProvider == nil {
		return nil, errors.New("api key provider is required")
	}

	return &NewsSearchTool{
		searcher:       searcher,
		logger:         logger,
		apiKeyProvider: apiKeyProvider,
		defaultAPIKey:  strings.TrimSpace(defaultAPIKey),
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *NewsSearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		NewsSearchToolName,
		mcp.WithDescription("Query NewsAPI.org for top headlines or a keyword search and return the matching article titles and URLs."),
		mcp.WithString(
			"endpoint",
			mcp.Required(),
			mcp.Enum(string(news.EndpointTopHeadlines), string(news.EndpointEverything)),
			mcp.Description("top-headlines for breaking news, everything for a keyword search."),
		),
		mcp.WithString(
			"api_key",
			mcp.Description("NewsAPI.org API key. Defaults to the Authorization bearer token, then the server configuration."),
		),
		mcp.WithString(
			"country",
			mcp.Description("2-letter country code, top-headlines only."),
		),
		mcp.WithString(
			"category",
			mcp.Description("Category such as business, sports or technology, top-headlines only."),
		),
		mcp.WithString(
			"q",
			mcp.Description("Search keywords, required for everything."),
		),
		mcp.WithString(
			"from",
			mcp.Description("Oldest article date as YYYY-MM-DD, everything only."),
		),
		mcp.WithNumber(
			"page_size",
			mcp.Description(fmt.Sprintf("Number of articles to fetch, %d to %d. Defaults to %d.",
				news.MinPageSize, news.MaxPageSize, news.DefaultPageSize)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the news_search tool logic using the configured dependencies.
func (t *NewsSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := t.buildQuery(ctx, arguments(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logger := t.logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("endpoint", string(query.Endpoint)),
	)
	logger.Debug("news_search started", zap.Int("page_size", query.PageSize))

	result := t.searcher.Search(ctx, query)
	payload, err := result.MarshalJSON()
	if err != nil {
		logger.Error("encode news_search result", zap.Error(err))
		return mcp.NewToolResultError("failed to encode news_search response"), nil
	}

	if !result.OK() {
		logger.Warn("news_search returned error envelope", zap.String("message", result.Message))
	} else {
		logger.Debug("news_search completed", zap.Int("articles", len(result.Articles)))
	}

	return envelopeResult(payload, !result.OK()), nil
}

func (t *NewsSearchTool) buildQuery(ctx context.Context, args map[string]any) (news.Query, error) {
	endpointName, err := readStringArg(args, "endpoint")
	if err != nil {
		return news.Query{}, err
	}
	if endpointName == "" {
		return news.Query{}, errors.New("endpoint is required")
	}
	endpoint, err := news.ParseEndpoint(endpointName)
	if err != nil {
		return news.Query{}, err
	}

	query := news.Query{Endpoint: endpoint}
	if query.APIKey, err = readStringArg(args, "api_key"); err != nil {
		return news.Query{}, err
	}
	if query.APIKey == "" {
		query.APIKey = t.apiKeyProvider(ctx)
	}
	if query.APIKey == "" {
		query.APIKey = t.defaultAPIKey
	}
	if query.APIKey == "" {
		return news.Query{}, errors.New("api_key is required: pass it as an argument or an Authorization bearer token")
	}

	switch endpoint {
	case news.EndpointTopHeadlines:
		if query.Country, err = readStringArg(args, "country"); err != nil {
			return news.Query{}, err
		}
		if query.Category, err = readStringArg(args, "category"); err != nil {
			return news.Query{}, err
		}
	case news.EndpointEverything:
		if query.Keywords, err = readStringArg(args, "q"); err != nil {
			return news.Query{}, err
		}
		if query.From, err = readStringArg(args, "from"); err != nil {
			return news.Query{}, err
		}
	}

	if query.PageSize, err = readIntArgWithDefault(args, "page_size", news.DefaultPageSize, news.ParsePageSize); err != nil {
		return news.Query{}, err
	}

	if err := query.Validate(); err != nil {
		return news.Query{}, err
	}

	return query, nil
}
