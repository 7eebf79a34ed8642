package news

import (
	"context"
	"strings"

	"github.com/Laisky/errors/v2"
)

// ErrPromptAborted is returned by a Prompter when the user cancels input.
var ErrPromptAborted = errors.New("prompt aborted")

// Validator rejects an input by returning a non-nil error. The prompt layer
// shows the error and asks again.
type Validator func(string) error

// Prompter is the interactive input surface the tool needs.
// Implementations block until the user answers or aborts.
type Prompter interface {
	// SelectOne offers options and returns the chosen one.
	SelectOne(ctx context.Context, message string, options []string, defaultOption string) (string, error)
	// ReadText reads free text. Empty input yields defaultValue.
	// A nil validator accepts anything.
	ReadText(ctx context.Context, message, defaultValue string, validate Validator) (string, error)
	// ReadRequiredText reads free text that must not be blank.
	ReadRequiredText(ctx context.Context, message string) (string, error)
}

// Defaults are prefilled prompt values taken from configuration.
type Defaults struct {
	APIKey string
}

// Collect runs the prompt sequence and assembles a Query.
func Collect(ctx context.Context, p Prompter, defaults Defaults) (Query, error) {
	if p == nil {
		return Query{}, errors.New("prompter is required")
	}

	var q Query

	options := make([]string, 0, len(Endpoints()))
	for _, ep := range Endpoints() {
		options = append(options, string(ep))
	}

	chosen, err := p.SelectOne(ctx, "Select endpoint:", options, string(EndpointTopHeadlines))
	if err != nil {
		return Query{}, errors.Wrap(err, "select endpoint")
	}
	if q.Endpoint, err = ParseEndpoint(chosen); err != nil {
		return Query{}, err
	}

	if q.APIKey, err = p.ReadText(ctx, "Enter your NewsAPI.org API key:", defaults.APIKey, nil); err != nil {
		return Query{}, errors.Wrap(err, "read api key")
	}

	switch q.Endpoint {
	case EndpointTopHeadlines:
		if q.Country, err = p.ReadText(ctx, "Country code (2-letter, e.g., 'us') [optional]:", "", nil); err != nil {
			return Query{}, errors.Wrap(err, "read country")
		}
		if q.Category, err = p.ReadText(ctx, "Category (business, sports, technology...) [optional]:", "", nil); err != nil {
			return Query{}, errors.Wrap(err, "read category")
		}
	case EndpointEverything:
		if q.Keywords, err = p.ReadRequiredText(ctx, "Search keywords (e.g., 'bitcoin'):"); err != nil {
			return Query{}, errors.Wrap(err, "read keywords")
		}
		if q.From, err = p.ReadText(ctx, "From date (YYYY-MM-DD) [optional]:", "", nil); err != nil {
			return Query{}, errors.Wrap(err, "read from date")
		}
	}

	rawSize, err := p.ReadText(ctx, "Number of articles to fetch (max 100):", "5", ValidatePageSize)
	if err != nil {
		return Query{}, errors.Wrap(err, "read page size")
	}
	if q.PageSize, err = ParsePageSize(strings.TrimSpace(rawSize)); err != nil {
		return Query{}, err
	}

	q.Country = strings.TrimSpace(q.Country)
	q.Category = strings.TrimSpace(q.Category)
	q.From = strings.TrimSpace(q.From)

	return q, nil
}
