package scraper

import (
	"io"
	"regexp"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// MaxContentLength caps full_content, in characters.
	MaxContentLength = 5000
	// PreviewLength caps content_preview, in characters.
	PreviewLength = 200

	truncationSuffix = "\n... (content truncated)"
	previewEllipsis  = "..."
)

// noiseSelector matches nodes that never carry page content.
const noiseSelector = "script, style, nav, footer, aside"

var blankLineRun = regexp.MustCompile(`\n[\s\p{Z}]*\n`)

// ExtractText parses an HTML document and returns its visible text: noise
// nodes removed, one trimmed text node per line, runs of blank lines
// collapsed and the whole result trimmed. Scripting is disabled while
// parsing so <noscript> children are elements, not one raw text node.
func ExtractText(r io.Reader) (string, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return "", errors.Wrap(err, "parse html")
	}
	doc := goquery.NewDocumentFromNode(root)

	doc.Find(noiseSelector).Remove()

	var lines []string
	for _, node := range doc.Nodes {
		lines = collectText(node, lines)
	}

	text := strings.Join(lines, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text), nil
}

// collectText walks the tree in document order and appends every non-blank
// text node, trimmed.
func collectText(node *html.Node, lines []string) []string {
	if node.Type == html.TextNode {
		if trimmed := strings.TrimSpace(node.Data); trimmed != "" {
			lines = append(lines, trimmed)
		}
		return lines
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		lines = collectText(child, lines)
	}

	return lines
}

// Truncate cuts text to max characters and marks the cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	return string(runes[:max]) + truncationSuffix
}

// Preview returns the first n characters of text, with an ellipsis when
// text is longer.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n]) + previewEllipsis
}
