package news

import (
	"fmt"
	"io"

	"github.com/Laisky/errors/v2"
)

// PrintArticles writes the human readable listing: a 1-indexed title line,
// the indented URL, then a blank line.
func PrintArticles(w io.Writer, articles []Article) error {
	for i, art := range articles {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n\n", i+1, stringOrNone(art.Title), stringOrNone(art.URL)); err != nil {
			return errors.Wrap(err, "write article")
		}
	}

	return nil
}
