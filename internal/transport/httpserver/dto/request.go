// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import "media-search-service/internal/domain"

// SearchRequest represents the query parameters for the full search endpoint.
type SearchRequest struct {
	Query    string `query:"q" validate:"max=200"`
	Type     string `query:"type" validate:"omitempty,oneof=movie series documentary music"`
	Genre    string `query:"genre" validate:"omitempty,max=50"`
	Year     int    `query:"year" validate:"omitempty,min=1900,max=2100"`
	Language string `query:"lang" validate:"omitempty,oneof=en rw auto"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=50"`
}

// ToSearchParams converts SearchRequest to domain.SearchParams. Unset
// language means auto-detection; unset pagination falls back to the domain
// defaults applied by SearchParams.Validate.
func (r *SearchRequest) ToSearchParams() domain.SearchParams {
	params := domain.SearchParams{
		Query:    r.Query,
		Language: domain.LanguageAuto,
		Filters: domain.Filters{
			Type:  domain.ContentType(r.Type),
			Genre: r.Genre,
			Year:  r.Year,
		},
		Page:  r.Page,
		Limit: r.Limit,
	}

	if r.Language != "" {
		params.Language = domain.Language(r.Language)
	}

	params.Validate()

	return params
}

// QuickSearchRequest represents the query parameters for the quick search
// (autocomplete) endpoint.
type QuickSearchRequest struct {
	Query string `query:"q" validate:"max=200"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=25"`
}
