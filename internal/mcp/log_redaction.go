package mcp

import (
	"encoding/json"
	"strings"
)

const redactedValue = "[REDACTED]"

// sensitiveKeys names JSON keys whose values never reach the logs. News
// envelopes echo the request params, so apiKey shows up in responses too.
var sensitiveKeys = map[string]struct{}{
	"api_key":       {},
	"apikey":        {},
	"authorization": {},
}

// redactMCPBody redacts credentials from a JSON-RPC payload. Input that is
// not JSON is returned unchanged.
func redactMCPBody(raw string) string {
	if raw == "" {
		return raw
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return raw
	}

	out, err := json.Marshal(redactMCPValue(payload))
	if err != nil {
		return raw
	}
	return string(out)
}

// redactMCPValue recursively redacts nested payloads. Tool results carry
// their envelope as a JSON string, so strings holding an object are
// redacted as well.
func redactMCPValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		output := make(map[string]any, len(v))
		for key, item := range v {
			if _, ok := sensitiveKeys[strings.ToLower(key)]; ok {
				output[key] = redactedValue
				continue
			}
			output[key] = redactMCPValue(item)
		}
		return output
	case []any:
		result := make([]any, 0, len(v))
		for _, item := range v {
			result = append(result, redactMCPValue(item))
		}
		return result
	case string:
		if !strings.HasPrefix(strings.TrimSpace(v), "{") {
			return v
		}
		return redactMCPBody(v)
	default:
		return value
	}
}

// redactHookPayload renders a redacted JSON string for hook logging.
func redactHookPayload(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return redactMCPBody(string(data))
}
