package scraper

import (
	"github.com/Laisky/vigi-tools/library/envelope"
)

// Result is the envelope returned by Fetch.
//
// Error envelopes come in three shapes: blank input carries only the
// message, a URL that could not be completed carries AttemptedURL, and a
// failed fetch carries ScrapedURL.
type Result struct {
	Status         envelope.Status
	OriginalURL    string
	AttemptedURL   string
	ScrapedURL     string
	ContentPreview string
	FullContent    string
	Message        string
}

// OK reports whether the page was fetched and extracted.
func (r Result) OK() bool {
	return r.Status == envelope.StatusSuccess
}

// MarshalJSON emits only the keys that belong to the envelope variant.
func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Status == envelope.StatusSuccess:
		return envelope.Marshal(struct {
			Status         envelope.Status `json:"status"`
			OriginalURL    string          `json:"original_url"`
			ScrapedURL     string          `json:"scraped_url"`
			ContentPreview string          `json:"content_preview"`
			FullContent    string          `json:"full_content"`
		}{r.Status, r.OriginalURL, r.ScrapedURL, r.ContentPreview, r.FullContent})
	case r.AttemptedURL != "":
		return envelope.Marshal(struct {
			Status       envelope.Status `json:"status"`
			OriginalURL  string          `json:"original_url"`
			AttemptedURL string          `json:"attempted_url"`
			Message      string          `json:"message"`
		}{envelope.StatusError, r.OriginalURL, r.AttemptedURL, r.Message})
	case r.ScrapedURL != "":
		return envelope.Marshal(struct {
			Status      envelope.Status `json:"status"`
			OriginalURL string          `json:"original_url"`
			ScrapedURL  string          `json:"scraped_url"`
			Message     string          `json:"message"`
		}{envelope.StatusError, r.OriginalURL, r.ScrapedURL, r.Message})
	default:
		return envelope.Marshal(struct {
			Status  envelope.Status `json:"status"`
			Message string          `json:"message"`
		}{envelope.StatusError, r.Message})
	}
}
