package tools

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/Laisky/errors/v2"
	mcp "github.com/mark3labs/mcp-go/mcp"
)

func arguments(req mcp.CallToolRequest) map[string]any {
	args, _ := req.Params.Arguments.(map[string]any)
	return args
}

// readStringArg returns the trimmed string argument, or "" when it is absent.
func readStringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}

	value, ok := raw.(string)
	if !ok {
		return "", errors.Errorf("%s must be a string", key)
	}

	return strings.TrimSpace(value), nil
}

// readIntArgWithDefault accepts a JSON number or a string handed to
// parseString. Fractional numbers are rejected rather than rounded.
func readIntArgWithDefault(args map[string]any, key string, def int, parseString func(string) (int, error)) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case float64:
		// MCP JSON numbers decode into float64
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, errors.Errorf("%s must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, errors.Errorf("%s must be an integer", key)
		}
		return int(n), nil
	case string:
		n, err := parseString(v)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid %s", key)
		}
		return n, nil
	default:
		return 0, errors.Errorf("%s must be an integer", key)
	}
}

// envelopeResult wraps a JSON envelope as text content and flags it as an
// error when the envelope says so.
func envelopeResult(payload []byte, isError bool) *mcp.CallToolResult {
	result := mcp.NewToolResultText(string(payload))
	result.IsError = isError
	return result
}
