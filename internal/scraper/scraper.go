package scraper

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"github.com/google/uuid"
	"golang.org/x/net/html/charset"

	"github.com/Laisky/vigi-tools/library/envelope"
	"github.com/Laisky/vigi-tools/library/log"
)

const (
	// DefaultTimeout bounds one page fetch, redirects included.
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent is sent with every fetch.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36 VigiScraper/1.0"
	// maxBodySize caps how much of a response body is read.
	maxBodySize = 5 * 1024 * 1024

	msgEmptyURL   = "URL cannot be empty."
	msgIncomplete = "Failed to construct a valid, absolute URL. Scheme or domain is missing."
	msgUnparsable = "The constructed URL is invalid and cannot be parsed."
)

// Option configures a Scraper.
type Option func(*Scraper)

// WithHTTPClient overrides the HTTP client. The client's redirect policy
// and timeout are used as-is.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scraper) {
		if timeout > 0 {
			s.client.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(s *Scraper) {
		if trimmed := strings.TrimSpace(userAgent); trimmed != "" {
			s.userAgent = trimmed
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger logSDK.Logger) Option {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scraper fetches pages and extracts their text. It keeps no per-call state.
type Scraper struct {
	client    *http.Client
	userAgent string
	logger    logSDK.Logger
}

// New constructs a Scraper with a 15 second timeout and the default
// redirect-following client.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		logger:    log.Logger.Named("scraper"),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Fetch completes rawURL, downloads the page once and returns its text.
// Every failure is reported through the envelope; there is no retry.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) Result {
	if strings.TrimSpace(rawURL) == "" {
		return Result{Status: envelope.StatusError, Message: msgEmptyURL}
	}

	completed := NormalizeURL(rawURL)
	logger := s.logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("original_url", rawURL),
		zap.String("scraped_url", completed),
	)

	if err := ValidateURL(completed); err != nil {
		logger.Debug("reject constructed url", zap.Error(err))
		msg := msgIncomplete
		if errors.Is(err, ErrUnparsableURL) {
			msg = msgUnparsable
		}
		return Result{
			Status:       envelope.StatusError,
			OriginalURL:  rawURL,
			AttemptedURL: completed,
			Message:      msg,
		}
	}

	text, err := s.scrape(ctx, logger, completed)
	if err != nil {
		logger.Debug("scrape failed", zap.Error(err))
		return Result{
			Status:      envelope.StatusError,
			OriginalURL: rawURL,
			ScrapedURL:  completed,
			Message:     describeFailure(err),
		}
	}

	content := Truncate(text, MaxContentLength)
	return Result{
		Status:         envelope.StatusSuccess,
		OriginalURL:    rawURL,
		ScrapedURL:     completed,
		ContentPreview: Preview(content, PreviewLength),
		FullContent:    content,
	}
}

func (s *Scraper) scrape(ctx context.Context, logger logSDK.Logger, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &requestError{err: err}
	}
	req.Header.Set("User-Agent", s.userAgent)

	logger.Debug("outgoing http request", zap.String("method", req.Method))

	startAt := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", &requestError{err: err}
	}
	defer resp.Body.Close()

	finalURL := target
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	logger.Debug("incoming http response",
		zap.Int("status", resp.StatusCode),
		zap.String("final_url", finalURL),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Duration("cost", time.Since(startAt)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, URL: finalURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &requestError{err: errors.Wrap(err, "read response body")}
	}

	// decode legacy charsets declared by the header or a <meta> tag
	decoded, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", errors.Wrap(err, "detect charset")
	}

	text, err := ExtractText(decoded)
	if err != nil {
		return "", errors.Wrap(err, "extract text")
	}

	return text, nil
}
