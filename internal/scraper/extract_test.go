package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTextDropsNoise(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
  <title> Example Page </title>
  <style>body { color: red; }</style>
  <script>var tracking = true;</script>
</head>
<body>
  <nav><a href="/">Home</a><a href="/about">About</a></nav>
  <h1>Headline</h1>
  <!-- a comment -->
  <p>First   paragraph with <b>bold</b> text.</p>


  <p>
     Second paragraph.
  </p>
  <aside>Related links</aside>
  <footer>Copyright</footer>
  <script type="application/ld+json">{"@type":"Article"}</script>
</body>
</html>`

	text, err := ExtractText(strings.NewReader(page))
	require.NoError(t, err)
	require.Equal(t, "Example Page\nHeadline\nFirst   paragraph with\nbold\ntext.\nSecond paragraph.", text)
}

func TestExtractTextReadsNoscriptAsMarkup(t *testing.T) {
	for _, page := range []string{
		`<noscript><img src="x.png"> Enable JS</noscript><p>Body</p>`,
		`<html><body><noscript><img src="x.png"> Enable JS</noscript><p>Body</p></body></html>`,
	} {
		text, err := ExtractText(strings.NewReader(page))
		require.NoError(t, err)
		require.Equal(t, "Enable JS\nBody", text, "page %q", page)
	}
}

func TestExtractTextCollapsesBlankLinesInsideNodes(t *testing.T) {
	text, err := ExtractText(strings.NewReader("<pre>line one\n\n   \n\nline two</pre>"))
	require.NoError(t, err)
	require.Equal(t, "line one\nline two", text)
}

func TestExtractTextKeepsUnicode(t *testing.T) {
	text, err := ExtractText(strings.NewReader("<p>Grüße aus Köln</p><p>你好</p>"))
	require.NoError(t, err)
	require.Equal(t, "Grüße aus Köln\n你好", text)
}

func TestTruncate(t *testing.T) {
	short := strings.Repeat("a", MaxContentLength)
	require.Equal(t, short, Truncate(short, MaxContentLength))

	long := strings.Repeat("é", MaxContentLength+1)
	got := Truncate(long, MaxContentLength)
	require.Equal(t, strings.Repeat("é", MaxContentLength)+"\n... (content truncated)", got)
}

func TestPreview(t *testing.T) {
	require.Equal(t, "short", Preview("short", PreviewLength))

	exact := strings.Repeat("b", PreviewLength)
	require.Equal(t, exact, Preview(exact, PreviewLength))

	long := strings.Repeat("ü", PreviewLength+1)
	require.Equal(t, strings.Repeat("ü", PreviewLength)+"...", Preview(long, PreviewLength))
}
