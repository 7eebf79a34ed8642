package scraper

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/Laisky/errors/v2"
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	kind := "Client"
	if e.Code >= 500 {
		kind = "Server"
	}

	return fmt.Sprintf("%d %s Error: %s for url: %s", e.Code, kind, http.StatusText(e.Code), e.URL)
}

// requestError marks a failure of the request itself that is neither a
// connection problem nor a timeout, such as an unreadable body.
type requestError struct {
	err error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

// Message prefixes, one per failure category.
const (
	prefixHTTP       = "HTTP error occurred: "
	prefixConnection = "Connection error: "
	prefixTimeout    = "Request timed out: "
	prefixRequest    = "Error during web request: "
	prefixUnexpected = "An unexpected error occurred: "
)

// describeFailure classifies a fetch error and renders the envelope message.
func describeFailure(err error) string {
	var (
		statusErr *StatusError
		netErr    net.Error
		opErr     *net.OpError
		dnsErr    *net.DNSError
		certErr   *tls.CertificateVerificationError
		reqErr    *requestError
	)

	switch {
	case errors.As(err, &statusErr):
		return prefixHTTP + statusErr.Error()
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return prefixTimeout + err.Error()
	case errors.As(err, &dnsErr),
		errors.As(err, &opErr),
		errors.As(err, &certErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET):
		return prefixConnection + err.Error()
	case errors.As(err, &reqErr):
		return prefixRequest + err.Error()
	default:
		return prefixUnexpected + err.Error()
	}
}
