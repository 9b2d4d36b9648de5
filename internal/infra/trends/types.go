package trends

import (
	"strings"
)

// PopularResponse is the wire format of the popular-searches feed.
type PopularResponse struct {
	Searches []PopularSearch `json:"searches"`
}

// PopularSearch is one popular search term with its request count.
type PopularSearch struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Terms extracts the non-empty, trimmed search terms in feed order.
// The feed is already sorted by popularity server-side.
func (r *PopularResponse) Terms() []string {
	terms := make([]string, 0, len(r.Searches))
	for _, s := range r.Searches {
		term := strings.ToLower(strings.TrimSpace(s.Term))
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}

	return terms
}
