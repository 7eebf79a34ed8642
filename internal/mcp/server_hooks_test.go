package mcp

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/vigi-tools/library/log"
)

func TestShouldDowngradeMCPErrorLog(t *testing.T) {
	require.True(t, shouldDowngradeMCPErrorLog(mcp.MethodResourcesList, errors.New("request error: resources not supported")))
	require.True(t, shouldDowngradeMCPErrorLog(mcp.MethodResourcesTemplatesList, errors.New("resources not supported")))
	require.True(t, shouldDowngradeMCPErrorLog(mcp.MethodPromptsList, errors.New("prompts not supported")))

	require.False(t, shouldDowngradeMCPErrorLog(mcp.MethodToolsList, errors.New("resources not supported")))
	require.False(t, shouldDowngradeMCPErrorLog(mcp.MethodResourcesList, errors.New("other failure")))
	require.False(t, shouldDowngradeMCPErrorLog(mcp.MethodResourcesList, nil))
}

func TestRedactMCPBodyArguments(t *testing.T) {
	payload := map[string]any{
		"method": "tools/call",
		"params": map[string]any{
			"name": "news_search",
			"arguments": map[string]any{
				"endpoint": "top-headlines",
				"api_key":  "secret-key",
			},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	redacted := redactMCPBody(string(data))
	require.NotContains(t, redacted, "secret-key")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(redacted), &parsed))
	args := parsed["params"].(map[string]any)["arguments"].(map[string]any)
	require.Equal(t, redactedValue, args["api_key"])
	require.Equal(t, "top-headlines", args["endpoint"])
}

func TestRedactMCPBodyEnvelopeText(t *testing.T) {
	envelopeText := `{"status":"success","endpoint":"everything","params":{"apiKey":"secret-key","q":"go"},"articles":[]}`
	payload := map[string]any{
		"result": map[string]any{
			"content": []any{map[string]any{"type": "text", "text": envelopeText}},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	redacted := redactMCPBody(string(data))
	require.NotContains(t, redacted, "secret-key")
	require.Contains(t, redacted, "everything")
}

func TestRedactMCPBodyKeepsNonJSON(t *testing.T) {
	require.Equal(t, "", redactMCPBody(""))
	require.Equal(t, "not json", redactMCPBody("not json"))
}

func TestWithHTTPLoggingPreservesBody(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		seen = string(data)
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(strings.Repeat("x", httpLogBodyLimit+10)))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{"api_key":"k"}`))
	withHTTPLogging(next, log.Logger).ServeHTTP(rec, req)

	require.Equal(t, `{"api_key":"k"}`, seen)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, httpLogBodyLimit+10, rec.Body.Len())
}

func TestStatusWriterDefaultsToOK(t *testing.T) {
	sw := &statusWriter{ResponseWriter: httptest.NewRecorder()}
	require.Equal(t, http.StatusOK, sw.Status())

	_, err := sw.Write([]byte("abc"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, sw.Status())
}

func TestTruncateForLog(t *testing.T) {
	logged, truncated := truncateForLog([]byte("abcdef"), 4)
	require.Equal(t, "abcd", logged)
	require.True(t, truncated)

	logged, truncated = truncateForLog([]byte("ab"), 4)
	require.Equal(t, "ab", logged)
	require.False(t, truncated)
}

func fieldValues(fields []zap.Field) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Key] = f.String
	}
	return values
}

func TestDescribeRPCCall(t *testing.T) {
	news := fieldValues(describeRPCCall([]byte(
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"news_search","arguments":{"endpoint":"everything","q":"go","api_key":"k"}}}`)))
	require.Equal(t, map[string]string{
		"rpc_method":    "tools/call",
		"tool":          "news_search",
		"news_endpoint": "everything",
	}, news)

	scrape := fieldValues(describeRPCCall([]byte(
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"web_scrape","arguments":{"url":"openai"}}}`)))
	require.Equal(t, map[string]string{
		"rpc_method": "tools/call",
		"tool":       "web_scrape",
		"scrape_url": "openai",
	}, scrape)

	list := fieldValues(describeRPCCall([]byte(`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`)))
	require.Equal(t, map[string]string{"rpc_method": "tools/list"}, list)

	require.Empty(t, describeRPCCall(nil))
	require.Empty(t, describeRPCCall([]byte("not json")))
	require.Empty(t, describeRPCCall([]byte(`[{"method":"tools/list"}]`)))
}
