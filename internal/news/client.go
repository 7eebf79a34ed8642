package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/google/uuid"

	"github.com/Laisky/vigi-tools/library/log"
)

const (
	// DefaultBaseURL is the NewsAPI v2 root; the endpoint name is appended.
	DefaultBaseURL = "https://newsapi.org/v2"
	// DefaultTimeout bounds one news request.
	DefaultTimeout = 30 * time.Second
	// logBodyLimit caps the number of response bytes logged for debugging.
	logBodyLimit = 4096
	// noneMarker renders an absent remote field in messages and listings.
	noneMarker = "None"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service root, primarily for testing.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient overrides the HTTP client used to reach the service.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout sets the per request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger logSDK.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to the news service. It holds no per-call state and is safe
// to reuse.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logSDK.Logger
}

// NewClient constructs a Client pointed at DefaultBaseURL.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  log.Logger.Named("news_client"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// apiResponse models the subset of the news service payload we read.
type apiResponse struct {
	Status   any          `json:"status"`
	Message  any          `json:"message"`
	Articles []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title any `json:"title"`
	URL   any `json:"url"`
}

// Search issues exactly one GET for q and shapes the response into a Result.
// Failures are reported through the envelope; Search never retries.
func (c *Client) Search(ctx context.Context, q Query) Result {
	endpointURL := c.baseURL + "/" + string(q.Endpoint)
	logger := c.logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("endpoint", string(q.Endpoint)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return errorResult("API request failed: %v", err)
	}

	values := url.Values{}
	for key, value := range q.Params() {
		switch v := value.(type) {
		case int:
			values.Set(key, strconv.Itoa(v))
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	req.URL.RawQuery = values.Encode()
	req.Header.Set("Accept", "application/json")

	logger.Debug("outgoing http request",
		zap.String("method", req.Method),
		zap.String("url", endpointURL),
		zap.Int("page_size", q.PageSize),
	)

	startAt := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		err = redactURLError(err, endpointURL)
		logger.Debug("news request failed", zap.Error(err))
		return errorResult("API request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Debug("read news response", zap.Error(err))
		return errorResult("API request failed: %v", errors.Wrap(err, "read response body"))
	}

	truncatedBody, truncated := truncateForLog(body, logBodyLimit)
	logger.Debug("incoming http response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", truncatedBody),
		zap.Bool("body_truncated", truncated),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorResult("API request failed: %s", statusError(resp.StatusCode, endpointURL))
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return errorResult("API request failed: %v", errors.Wrap(err, "decode response"))
	}

	status := stringOrNone(optionalString(payload.Status))
	if status != "ok" {
		message := stringOrNone(optionalString(payload.Message))
		logger.Debug("news service rejected query",
			zap.String("status", status),
			zap.String("message", message),
		)
		return errorResult("API returned status '%s': %s", status, message)
	}

	articles := make([]Article, 0, len(payload.Articles))
	for _, art := range payload.Articles {
		articles = append(articles, Article{
			Title: optionalString(art.Title),
			URL:   optionalString(art.URL),
		})
	}

	logger.Debug("news query succeeded", zap.Int("articles", len(articles)))
	return successResult(q, articles)
}

// statusError describes a non-2xx response without echoing the query string,
// which carries the API key.
func statusError(code int, endpointURL string) string {
	kind := "Client"
	if code >= 500 {
		kind = "Server"
	}

	return fmt.Sprintf("%d %s Error: %s for url: %s", code, kind, http.StatusText(code), endpointURL)
}

// redactURLError replaces the request URL inside a *url.Error so the API key
// never reaches messages or logs.
func redactURLError(err error, endpointURL string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: endpointURL, Err: urlErr.Err}
	}

	return err
}

func optionalString(raw any) *string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return &v
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

func stringOrNone(s *string) string {
	if s == nil {
		return noneMarker
	}

	return *s
}

func truncateForLog(body []byte, limit int) (string, bool) {
	if len(body) <= limit {
		return string(body), false
	}

	return string(body[:limit]), true
}
