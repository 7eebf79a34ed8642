package news

import (
	"bytes"
	"context"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/vigi-tools/library/envelope"
	"github.com/Laisky/vigi-tools/library/log"
)

type stubSearcher struct {
	result  Result
	queries []Query
}

func (s *stubSearcher) Search(_ context.Context, q Query) Result {
	s.queries = append(s.queries, q)
	return s.result
}

func strPtr(s string) *string { return &s }

func mustTool(t *testing.T, searcher Searcher) *Tool {
	t.Helper()

	tool, err := NewTool(searcher, log.Logger.Named("test_news_tool"), Defaults{})
	require.NoError(t, err)
	return tool
}

func TestNewToolRequiresDependencies(t *testing.T) {
	_, err := NewTool(nil, log.Logger, Defaults{})
	require.Error(t, err)

	_, err = NewTool(&stubSearcher{}, nil, Defaults{})
	require.Error(t, err)
}

func TestRunPrintsArticles(t *testing.T) {
	searcher := &stubSearcher{result: Result{
		Status:   envelope.StatusSuccess,
		Endpoint: EndpointTopHeadlines,
		Articles: []Article{
			{Title: strPtr("First"), URL: strPtr("https://a.example")},
			{Title: nil, URL: strPtr("https://b.example")},
		},
	}}
	tool := mustTool(t, searcher)
	var out bytes.Buffer

	result, err := tool.Run(context.Background(), &scriptedPrompter{answers: []string{"", "k", "", "", "2"}}, &out)
	require.NoError(t, err)
	require.True(t, result.OK())
	require.Len(t, searcher.queries, 1)
	require.Equal(t, 2, searcher.queries[0].PageSize)
	require.Equal(t, "1. First\n   https://a.example\n\n2. None\n   https://b.example\n\n", out.String())
}

func TestRunPrintsNothingOnError(t *testing.T) {
	searcher := &stubSearcher{result: Result{
		Status:  envelope.StatusError,
		Message: "API returned status 'error': rate limited",
	}}
	tool := mustTool(t, searcher)
	var out bytes.Buffer

	result, err := tool.Run(context.Background(), &scriptedPrompter{answers: []string{"", "k", "", "", ""}}, &out)
	require.NoError(t, err)
	require.False(t, result.OK())
	require.Contains(t, result.Message, "rate limited")
	require.Empty(t, out.String())
}

func TestRunAbortSkipsSearch(t *testing.T) {
	searcher := &stubSearcher{}
	tool := mustTool(t, searcher)

	_, err := tool.Run(context.Background(), &scriptedPrompter{abortAt: 1}, &bytes.Buffer{})
	require.True(t, errors.Is(err, ErrPromptAborted))
	require.Empty(t, searcher.queries)
}

func TestPrintArticlesEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintArticles(&out, nil))
	require.Empty(t, out.String())
}
