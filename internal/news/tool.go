package news

import (
	"context"
	"io"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
)

// Searcher runs one query against the news service.
type Searcher interface {
	Search(ctx context.Context, q Query) Result
}

// Tool ties the prompts, the service call and the listing together.
type Tool struct {
	searcher Searcher
	logger   logSDK.Logger
	defaults Defaults
}

// NewTool constructs a Tool.
func NewTool(searcher Searcher, logger logSDK.Logger, defaults Defaults) (*Tool, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Tool{
		searcher: searcher,
		logger:   logger,
		defaults: defaults,
	}, nil
}

// Run collects a query, performs it and prints the articles to out.
// Nothing is printed when the envelope is an error. The returned error is
// reserved for prompt failures, such as the user aborting.
func (t *Tool) Run(ctx context.Context, p Prompter, out io.Writer) (Result, error) {
	q, err := Collect(ctx, p, t.defaults)
	if err != nil {
		return Result{}, errors.Wrap(err, "collect query")
	}

	result := t.searcher.Search(ctx, q)
	if !result.OK() {
		t.logger.Debug("news query returned an error envelope", zap.String("message", result.Message))
		return result, nil
	}

	if err := PrintArticles(out, result.Articles); err != nil {
		return Result{}, errors.Wrap(err, "print articles")
	}

	return result, nil
}
