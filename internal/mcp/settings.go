package mcp

import (
	"strconv"
	"strings"

	gconfig "github.com/Laisky/go-config/v2"
)

// ToolsSettings captures which tools the server registers.
type ToolsSettings struct {
	NewsSearchEnabled bool
	WebScrapeEnabled  bool
}

// LoadToolsSettingsFromConfig reads the MCP tools configuration.
// Every tool is enabled unless explicitly disabled.
func LoadToolsSettingsFromConfig() ToolsSettings {
	return ToolsSettings{
		NewsSearchEnabled: boolFromConfig("settings.mcp.tools.news_search.enabled", true),
		WebScrapeEnabled:  boolFromConfig("settings.mcp.tools.web_scrape.enabled", true),
	}
}

// boolFromConfig retrieves a boolean configuration value with a default fallback.
// Environment overrides deliver the flag as a strconv.ParseBool string.
func boolFromConfig(key string, def bool) bool {
	switch v := gconfig.S.Get(key).(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}

	return def
}
