package tools

import (
	"context"
	"encoding/json"
	"testing"

	mcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/vigi-tools/internal/news"
	"github.com/Laisky/vigi-tools/library/envelope"
	"github.com/Laisky/vigi-tools/library/log"
)

type stubNewsSearcher struct {
	queries []news.Query
	result  news.Result
}

func (s *stubNewsSearcher) Search(_ context.Context, q news.Query) news.Result {
	s.queries = append(s.queries, q)
	return s.result
}

func mustNewsSearchTool(t *testing.T, searcher NewsSearcher, headerKey, defaultKey string) *NewsSearchTool {
	t.Helper()

	tool, err := NewNewsSearchTool(searcher, log.Logger.Named("test_news_search"),
		func(context.Context) string { return headerKey }, defaultKey)
	require.NoError(t, err)
	return tool
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func TestNewNewsSearchToolRequiresDependencies(t *testing.T) {
	_, err := NewNewsSearchTool(nil, log.Logger, func(context.Context) string { return "" }, "")
	require.Error(t, err)

	_, err = NewNewsSearchTool(&stubNewsSearcher{}, nil, func(context.Context) string { return "" }, "")
	require.Error(t, err)

	_, err = NewNewsSearchTool(&stubNewsSearcher{}, log.Logger, nil, "")
	require.Error(t, err)
}

func TestNewsSearchHandleSuccess(t *testing.T) {
	title, link := "Go 2 released", "https://go.dev/blog"
	searcher := &stubNewsSearcher{result: news.Result{
		Status:   envelope.StatusSuccess,
		Endpoint: news.EndpointEverything,
		Params:   map[string]any{"apiKey": "arg-key", "q": "golang", "pageSize": 3},
		Articles: []news.Article{{Title: &title, URL: &link}},
	}}
	tool := mustNewsSearchTool(t, searcher, "header-key", "config-key")

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"endpoint":  "everything",
		"api_key":   "arg-key",
		"q":         " golang ",
		"from":      "2024-01-01",
		"country":   "us",
		"page_size": float64(3),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.Len(t, searcher.queries, 1)
	require.Equal(t, news.Query{
		Endpoint: news.EndpointEverything,
		APIKey:   "arg-key",
		Keywords: "golang",
		From:     "2024-01-01",
		PageSize: 3,
	}, searcher.queries[0])

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	require.Equal(t, "success", payload["status"])
	require.Equal(t, "everything", payload["endpoint"])
	require.Len(t, payload["articles"], 1)
}

func TestNewsSearchHandleAPIKeyFallbacks(t *testing.T) {
	searcher := &stubNewsSearcher{result: news.Result{Status: envelope.StatusSuccess}}

	tool := mustNewsSearchTool(t, searcher, "header-key", "config-key")
	_, err := tool.Handle(context.Background(), callRequest(map[string]any{"endpoint": "top-headlines"}))
	require.NoError(t, err)
	require.Equal(t, "header-key", searcher.queries[0].APIKey)
	require.Equal(t, news.DefaultPageSize, searcher.queries[0].PageSize)

	tool = mustNewsSearchTool(t, searcher, "", "config-key")
	_, err = tool.Handle(context.Background(), callRequest(map[string]any{"endpoint": "top-headlines"}))
	require.NoError(t, err)
	require.Equal(t, "config-key", searcher.queries[1].APIKey)
}

func TestNewsSearchHandleRejectsInvalidArguments(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
		key  string
	}{
		{name: "missing endpoint", args: map[string]any{}, key: "k"},
		{name: "unknown endpoint", args: map[string]any{"endpoint": "sources"}, key: "k"},
		{name: "missing api key", args: map[string]any{"endpoint": "top-headlines"}},
		{name: "missing keywords", args: map[string]any{"endpoint": "everything"}, key: "k"},
		{name: "blank keywords", args: map[string]any{"endpoint": "everything", "q": "   "}, key: "k"},
		{name: "page size zero", args: map[string]any{"endpoint": "top-headlines", "page_size": float64(0)}, key: "k"},
		{name: "page size too large", args: map[string]any{"endpoint": "top-headlines", "page_size": float64(101)}, key: "k"},
		{name: "fractional page size", args: map[string]any{"endpoint": "top-headlines", "page_size": 2.5}, key: "k"},
		{name: "non numeric page size", args: map[string]any{"endpoint": "top-headlines", "page_size": "ten"}, key: "k"},
		{name: "signed page size string", args: map[string]any{"endpoint": "top-headlines", "page_size": "+5"}, key: "k"},
		{name: "padded page size string", args: map[string]any{"endpoint": "top-headlines", "page_size": " 5"}, key: "k"},
		{name: "out of range page size string", args: map[string]any{"endpoint": "top-headlines", "page_size": "101"}, key: "k"},
		{name: "non string country", args: map[string]any{"endpoint": "top-headlines", "country": 7}, key: "k"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &stubNewsSearcher{}
			tool := mustNewsSearchTool(t, searcher, tc.key, "")

			result, err := tool.Handle(context.Background(), callRequest(tc.args))
			require.NoError(t, err)
			require.True(t, result.IsError)
			require.NotEmpty(t, resultText(t, result))
			require.Empty(t, searcher.queries)
		})
	}
}

func TestNewsSearchHandleErrorEnvelope(t *testing.T) {
	searcher := &stubNewsSearcher{result: news.Result{
		Status:  envelope.StatusError,
		Message: "API returned status 'error': Your API key is invalid.",
	}}
	tool := mustNewsSearchTool(t, searcher, "bad-key", "")

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"endpoint":  "top-headlines",
		"page_size": "10",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, 10, searcher.queries[0].PageSize)
	require.JSONEq(t,
		`{"status":"error","message":"API returned status 'error': Your API key is invalid."}`,
		resultText(t, result))
}

func TestNewsSearchDefinition(t *testing.T) {
	tool := mustNewsSearchTool(t, &stubNewsSearcher{}, "", "")
	def := tool.Definition()
	require.Equal(t, NewsSearchToolName, def.Name)
	require.Contains(t, def.InputSchema.Required, "endpoint")
	require.Contains(t, def.InputSchema.Properties, "page_size")
}
