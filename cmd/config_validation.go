package cmd

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"strconv"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared config source.
// It returns an error when any configured value is malformed or violates constraints.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.S.Get(key)
	})
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// Every problem is collected so one run reports all of them.
func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateNewsConfig(get, &validationErrs)
	validateScraperConfig(get, &validationErrs)
	validateMCPToolsConfig(get, &validationErrs)
	validateServeConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateNewsConfig validates the news service client settings.
func validateNewsConfig(get configGetter, errs *[]string) {
	validateOptionalString(get, "settings.news.api_key", errs)
	validateOptionalURL(get, "settings.news.base_url", errs)
	validateOptionalIntMin(get, "settings.news.timeout", 1, errs)
}

// validateScraperConfig validates the page fetcher settings.
func validateScraperConfig(get configGetter, errs *[]string) {
	validateOptionalIntMin(get, "settings.scraper.timeout", 1, errs)
	validateOptionalStringNonEmpty(get, "settings.scraper.user_agent", errs)
}

// validateMCPToolsConfig validates MCP tool toggles.
func validateMCPToolsConfig(get configGetter, errs *[]string) {
	keys := []string{
		"settings.mcp.tools.news_search.enabled",
		"settings.mcp.tools.web_scrape.enabled",
	}

	for _, key := range keys {
		validateOptionalBool(get, key, errs)
	}

	newsRaw := get("settings.mcp.tools.news_search.enabled")
	scrapeRaw := get("settings.mcp.tools.web_scrape.enabled")
	if newsRaw != nil && scrapeRaw != nil {
		newsOn, newsOK := parseStrictBool(newsRaw)
		scrapeOn, scrapeOK := parseStrictBool(scrapeRaw)
		if newsOK && scrapeOK && !newsOn && !scrapeOn {
			appendValidationError(errs, "settings.mcp.tools must leave at least one tool enabled")
		}
	}
}

// validateServeConfig validates the listen address when the serve command binds one.
func validateServeConfig(get configGetter, errs *[]string) {
	raw := get("listen")
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "listen must be a string address")
		return
	}

	if _, _, err := net.SplitHostPort(strings.TrimSpace(value)); err != nil {
		appendValidationError(errs, "listen must look like host:port")
	}
}

// validateOptionalBool validates an optionally configured boolean key.
func validateOptionalBool(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	if _, ok := parseStrictBool(raw); !ok {
		appendValidationError(errs, "%s must be a boolean", key)
	}
}

// validateOptionalIntMin validates an optionally configured integer key with a minimum constraint.
func validateOptionalIntMin(get configGetter, key string, min int, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictInt(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be an integer", key)
		return
	}

	if value < min {
		appendValidationError(errs, "%s must be >= %d", key, min)
	}
}

// validateOptionalURL validates an optionally configured absolute URL key.
func validateOptionalURL(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string URL", key)
		return
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		appendValidationError(errs, "%s must not be empty", key)
		return
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		appendValidationError(errs, "%s must be a valid absolute URL", key)
	}
}

// validateOptionalString validates that an optionally configured key holds a string.
// Blank is allowed.
func validateOptionalString(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	if _, parseErr := parseStrictString(raw); parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
	}
}

// validateOptionalStringNonEmpty validates an optionally configured non-empty string key.
func validateOptionalStringNonEmpty(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
		return
	}

	if strings.TrimSpace(value) == "" {
		appendValidationError(errs, "%s must not be empty", key)
	}
}

// parseStrictBool accepts what gconfig.S.GetBool reads back unchanged:
// a YAML boolean or a strconv.ParseBool string such as "true" or "0".
func parseStrictBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return parsed, err == nil
	default:
		return false, false
	}
}

// parseStrictInt accepts whole numbers only. YAML yields int, JSON float64,
// and environment overrides arrive as strings.
func parseStrictInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if math.Trunc(v) != v {
			return 0, errors.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, errors.Wrap(err, "atoi")
		}
		return parsed, nil
	default:
		return 0, errors.Errorf("unsupported int type %T", value)
	}
}

func parseStrictString(value any) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", errors.Errorf("unsupported string type %T", value)
	}
	return v, nil
}

// appendValidationError appends a formatted validation error to the collector.
func appendValidationError(errs *[]string, format string, args ...any) {
	if errs == nil {
		return
	}
	*errs = append(*errs, fmt.Sprintf(format, args...))
}
