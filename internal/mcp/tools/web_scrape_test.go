package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/vigi-tools/internal/scraper"
	"github.com/Laisky/vigi-tools/library/envelope"
	"github.com/Laisky/vigi-tools/library/log"
)

type stubPageFetcher struct {
	urls   []string
	result scraper.Result
}

func (s *stubPageFetcher) Fetch(_ context.Context, rawURL string) scraper.Result {
	s.urls = append(s.urls, rawURL)
	return s.result
}

func mustWebScrapeTool(t *testing.T, fetcher PageFetcher) *WebScrapeTool {
	t.Helper()

	tool, err := NewWebScrapeTool(fetcher, log.Logger.Named("test_web_scrape"))
	require.NoError(t, err)
	return tool
}

func TestNewWebScrapeToolRequiresDependencies(t *testing.T) {
	_, err := NewWebScrapeTool(nil, log.Logger)
	require.Error(t, err)

	_, err = NewWebScrapeTool(&stubPageFetcher{}, nil)
	require.Error(t, err)
}

func TestWebScrapeHandleSuccess(t *testing.T) {
	fetcher := &stubPageFetcher{result: scraper.Result{
		Status:         envelope.StatusSuccess,
		OriginalURL:    "openai",
		ScrapedURL:     "https://openai.com/",
		ContentPreview: "Hello <world>",
		FullContent:    "Hello <world>",
	}}
	tool := mustWebScrapeTool(t, fetcher)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{"url": "openai"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, []string{"openai"}, fetcher.urls)

	text := resultText(t, result)
	require.Contains(t, text, "Hello <world>")
	require.JSONEq(t, `{
		"status": "success",
		"original_url": "openai",
		"scraped_url": "https://openai.com/",
		"content_preview": "Hello <world>",
		"full_content": "Hello <world>"
	}`, text)
}

func TestWebScrapeHandleErrorEnvelope(t *testing.T) {
	fetcher := &stubPageFetcher{result: scraper.Result{
		Status:  envelope.StatusError,
		Message: "URL cannot be empty.",
	}}
	tool := mustWebScrapeTool(t, fetcher)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, []string{""}, fetcher.urls)
	require.JSONEq(t, `{"status":"error","message":"URL cannot be empty."}`, resultText(t, result))
}

func TestWebScrapeHandleRejectsNonStringURL(t *testing.T) {
	fetcher := &stubPageFetcher{}
	tool := mustWebScrapeTool(t, fetcher)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{"url": 42}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Equal(t, "url must be a string", resultText(t, result))
	require.Empty(t, fetcher.urls)
}
