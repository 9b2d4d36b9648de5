package domain

// Tier identifies which retrieval strategy produced a result.
type Tier string

const (
	TierExact   Tier = "exact"
	TierPartial Tier = "partial"
	TierFuzzy   Tier = "fuzzy"
	// TierNone is reported when every tier came back empty.
	TierNone Tier = "none"
)

// Language is the caller's language hint for query normalization.
type Language string

const (
	LanguageEnglish     Language = "en"
	LanguageKinyarwanda Language = "rw"
	LanguageAuto        Language = "auto"
)

// Filters narrows a search to a content type, genre name and/or release year.
type Filters struct {
	Type  ContentType
	Genre string
	Year  int
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f.Type == "" && f.Genre == "" && f.Year == 0
}

// SearchParams holds one search request after HTTP decoding.
// Query is the raw user input; retrieval always works on Normalize(Query).
type SearchParams struct {
	Query    string
	Language Language
	Filters  Filters

	// Pagination (full search only; quick search takes a bare limit)
	Page  int
	Limit int
}

// Validate ensures search params are within acceptable bounds. This is bound
// correction, not validation.
func (p *SearchParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 50 {
		p.Limit = 50
	}
	if p.Language == "" {
		p.Language = LanguageAuto
	}
}

// Offset calculates the result offset for pagination.
func (p *SearchParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ScoredContent is a catalog record annotated with the relevance score and
// the tier that produced it.
//
// Invariants: exact/partial results carry Relevance > 0; fuzzy results carry
// the similarity value, which is always >= the configured threshold.
type ScoredContent struct {
	Content   *Content `json:"content"`
	Relevance float64  `json:"relevance"`
	Tier      Tier     `json:"tier,omitempty"`
}

// QuickResult holds the output of the quick/autocomplete pipeline.
type QuickResult struct {
	Contents    []ScoredContent `json:"contents"`
	People      []Person        `json:"people"`
	Suggestions []string        `json:"suggestions"`
}
