// Package envelope defines the status discriminator shared by every tool
// result and the JSON encoding used to emit them.
package envelope

import (
	"bytes"
	"encoding/json"

	"github.com/Laisky/errors/v2"
)

// Status tags a result envelope as a success or an error.
type Status string

const (
	// StatusSuccess marks a completed tool call.
	StatusSuccess Status = "success"
	// StatusError marks a tool call that failed; the envelope carries a message.
	StatusError Status = "error"
)

// Marshal encodes v as compact JSON without HTML escaping.
// Non-ASCII characters are written as-is.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encode envelope")
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
