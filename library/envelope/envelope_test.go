package envelope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalKeepsHTMLAndUnicode(t *testing.T) {
	payload := map[string]any{
		"status":  StatusSuccess,
		"content": "<p>Grüße & 你好</p>",
	}

	out, err := Marshal(payload)
	require.NoError(t, err)
	require.Equal(t, `{"content":"<p>Grüße & 你好</p>","status":"success"}`, string(out))
}

func TestMarshalRejectsUnsupportedValue(t *testing.T) {
	_, err := Marshal(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "encode envelope")
}
