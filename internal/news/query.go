// Package news implements the interactive NewsAPI query tool.
//
// A call collects a Query through a Prompter, issues exactly one GET to the
// news service and returns a Result envelope. Nothing survives the call.
package news

import (
	"strconv"
	"strings"

	"github.com/Laisky/errors/v2"
)

// Endpoint is the news service query mode.
type Endpoint string

const (
	// EndpointTopHeadlines lists breaking headlines, optionally by country and category.
	EndpointTopHeadlines Endpoint = "top-headlines"
	// EndpointEverything searches all indexed articles by keyword.
	EndpointEverything Endpoint = "everything"
)

const (
	// DefaultPageSize is offered by the page size prompt.
	DefaultPageSize = 5
	// MinPageSize and MaxPageSize bound the accepted page size, inclusive.
	MinPageSize = 1
	MaxPageSize = 100
)

// Endpoints lists the selectable endpoints in menu order.
func Endpoints() []Endpoint {
	return []Endpoint{EndpointTopHeadlines, EndpointEverything}
}

// ParseEndpoint maps a user or tool supplied name onto an Endpoint.
func ParseEndpoint(name string) (Endpoint, error) {
	switch Endpoint(strings.TrimSpace(name)) {
	case EndpointTopHeadlines:
		return EndpointTopHeadlines, nil
	case EndpointEverything:
		return EndpointEverything, nil
	default:
		return "", errors.Errorf("unknown endpoint %q, want one of [top-headlines, everything]", name)
	}
}

// Query holds everything needed for one news service request.
type Query struct {
	Endpoint Endpoint
	APIKey   string

	// top-headlines only
	Country  string
	Category string

	// everything only
	Keywords string
	From     string

	PageSize int
}

// Validate checks the invariants the prompts enforce interactively.
func (q Query) Validate() error {
	if _, err := ParseEndpoint(string(q.Endpoint)); err != nil {
		return err
	}
	if q.Endpoint == EndpointEverything && strings.TrimSpace(q.Keywords) == "" {
		return errors.New("search keywords are required for the everything endpoint")
	}
	if q.PageSize < MinPageSize || q.PageSize > MaxPageSize {
		return errors.Errorf("page size must be between %d and %d, got %d", MinPageSize, MaxPageSize, q.PageSize)
	}

	return nil
}

// Params renders the request parameters. Blank optional values are left out
// entirely rather than sent as empty strings.
func (q Query) Params() map[string]any {
	params := map[string]any{
		"apiKey":   q.APIKey,
		"pageSize": q.PageSize,
	}

	switch q.Endpoint {
	case EndpointTopHeadlines:
		setIfNotBlank(params, "country", q.Country)
		setIfNotBlank(params, "category", q.Category)
	case EndpointEverything:
		params["q"] = q.Keywords
		setIfNotBlank(params, "from", q.From)
	}

	return params
}

func setIfNotBlank(params map[string]any, key, value string) {
	if strings.TrimSpace(value) != "" {
		params[key] = value
	}
}

// ParsePageSize accepts only a plain base-10 digit string within
// [MinPageSize, MaxPageSize]. Signs, spaces and out of range values are
// rejected, never clamped.
func ParsePageSize(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("page size cannot be empty")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, errors.Errorf("page size %q is not a number", raw)
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parse page size %q", raw)
	}
	if n < MinPageSize || n > MaxPageSize {
		return 0, errors.Errorf("page size must be between %d and %d", MinPageSize, MaxPageSize)
	}

	return n, nil
}

// ValidatePageSize is ParsePageSize shaped as a prompt validator.
func ValidatePageSize(raw string) error {
	_, err := ParsePageSize(raw)
	return err
}
