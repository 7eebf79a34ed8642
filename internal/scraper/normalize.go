// Package scraper fetches a web page and returns its visible text.
//
// User input is often a partial URL ("openai", "github.com/features"), so
// NormalizeURL first completes it into an absolute https URL using a small
// table of guesses. ValidateURL then decides whether the guess is usable
// before any network call is made.
package scraper

import (
	"net"
	"net/url"
	"strings"

	"github.com/Laisky/errors/v2"
)

const (
	// placeholderHost stands in when the input is a bare path.
	placeholderHost = "example.com"
	// bareNameSuffix completes a host token that has no dot.
	bareNameSuffix = ".com"
	defaultScheme  = "https"
)

// recognizedSchemes are taken at face value when the input starts with one.
var recognizedSchemes = []string{"http://", "https://", "ftp://", "ftps://"}

var (
	// ErrUnparsableURL means the completed URL cannot be parsed at all.
	ErrUnparsableURL = errors.New("constructed url cannot be parsed")
	// ErrIncompleteURL means the completed URL still lacks a scheme or host.
	ErrIncompleteURL = errors.New("constructed url has no scheme or host")
)

// NormalizeURL turns possibly partial user input into an absolute URL.
// It returns "" for blank input and never fails; use ValidateURL on the
// result. Rules, first match wins:
//
//  1. recognized scheme that parses with a host: re-serialized unchanged
//  2. recognized scheme without a host: https + the text after "//",
//     with ".com" appended when that text has no dot
//  3. no scheme, first segment has a dot: it is the host
//  4. no scheme, first segment is a bare name: name + ".com" is the host
//  5. no scheme, input starts with "/": placeholder host example.com,
//     the input kept verbatim as path, query and fragment
//
// Rules 3 to 5 force https, keep query and fragment, and turn an empty path
// into "/".
func NormalizeURL(raw string) string {
	partial := strings.TrimSpace(raw)
	if partial == "" {
		return ""
	}

	if hasRecognizedScheme(partial) {
		return normalizeWithScheme(partial)
	}

	return normalizeSchemeless(partial)
}

func hasRecognizedScheme(s string) bool {
	for _, prefix := range recognizedSchemes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func normalizeWithScheme(partial string) string {
	parsed, err := url.Parse(partial)
	if err != nil {
		return defaultScheme + "://" + partial
	}
	if parsed.Host != "" {
		return parsed.String()
	}

	_, domainPart, _ := strings.Cut(partial, "//")
	if domainPart == "" || strings.Contains(domainPart, ".") {
		return defaultScheme + "://" + domainPart
	}

	return defaultScheme + "://" + domainPart + bareNameSuffix
}

func normalizeSchemeless(partial string) string {
	if strings.HasPrefix(partial, "/") {
		return defaultScheme + "://" + placeholderHost + partial
	}

	parsed, err := url.Parse("//" + partial)
	if err != nil {
		return normalizeRawSplit(partial)
	}

	completed := *parsed
	completed.Scheme = defaultScheme
	completed.Host = completeHost(parsed.Host)
	if completed.Path == "" {
		completed.Path = "/"
		completed.RawPath = ""
	} else if !strings.HasPrefix(completed.Path, "/") {
		completed.Path = "/" + completed.Path
		completed.RawPath = ""
	}

	return completed.String()
}

// normalizeRawSplit handles schemeless input the URL grammar rejects by
// splitting on the first "/" by hand. The result usually fails validation,
// which is the intended outcome for such input.
func normalizeRawSplit(partial string) string {
	first, rest, hasRest := strings.Cut(partial, "/")
	path := "/"
	if hasRest {
		path = "/" + rest
	}

	return defaultScheme + "://" + completeHost(first) + path
}

// completeHost applies the host guesses to the first path segment.
func completeHost(host string) string {
	switch {
	case host == "":
		return placeholderHost
	case strings.Contains(host, "."), strings.HasPrefix(host, "["):
		return host
	case hasExplicitPort(host):
		return host
	default:
		return strings.TrimSuffix(host, ":") + bareNameSuffix
	}
}

func hasExplicitPort(host string) bool {
	_, port, err := net.SplitHostPort(host)
	return err == nil && port != ""
}

// ValidateURL reports whether a completed URL is absolute and parseable.
func ValidateURL(completed string) error {
	parsed, err := url.Parse(completed)
	if err != nil {
		return errors.Wrap(ErrUnparsableURL, err.Error())
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return ErrIncompleteURL
	}

	return nil
}
