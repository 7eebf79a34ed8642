package news

import (
	"fmt"

	"github.com/Laisky/vigi-tools/library/envelope"
)

// Article is the projection kept from each remote article record.
// A nil field means the remote record did not carry it.
type Article struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
}

// Result is the envelope returned by a news query.
type Result struct {
	Status   envelope.Status
	Endpoint Endpoint
	Params   map[string]any
	Articles []Article
	Message  string
}

// OK reports whether the query succeeded.
func (r Result) OK() bool {
	return r.Status == envelope.StatusSuccess
}

// MarshalJSON emits only the keys that belong to the envelope variant.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Status != envelope.StatusSuccess {
		return envelope.Marshal(struct {
			Status  envelope.Status `json:"status"`
			Message string          `json:"message"`
		}{envelope.StatusError, r.Message})
	}

	articles := r.Articles
	if articles == nil {
		articles = []Article{}
	}

	return envelope.Marshal(struct {
		Status   envelope.Status `json:"status"`
		Endpoint Endpoint        `json:"endpoint"`
		Params   map[string]any  `json:"params"`
		Articles []Article       `json:"articles"`
	}{envelope.StatusSuccess, r.Endpoint, r.Params, articles})
}

func successResult(q Query, articles []Article) Result {
	return Result{
		Status:   envelope.StatusSuccess,
		Endpoint: q.Endpoint,
		Params:   q.Params(),
		Articles: articles,
	}
}

func errorResult(format string, args ...any) Result {
	return Result{
		Status:  envelope.StatusError,
		Message: fmt.Sprintf(format, args...),
	}
}
