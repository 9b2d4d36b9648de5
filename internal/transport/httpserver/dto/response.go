package dto

import (
	"media-search-service/internal/app/service"
	"media-search-service/internal/domain"
)

// ContentResponse represents a single catalog item in the response.
type ContentResponse struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	ShortDescription string   `json:"short_description,omitempty"`
	Type             string   `json:"type"`
	Genres           []string `json:"genres,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	ViewCount        int64    `json:"view_count"`
	AverageRating    float64  `json:"average_rating,omitempty"`
	Featured         bool     `json:"featured,omitempty"`
	Trending         bool     `json:"trending,omitempty"`
	ImageURL         string   `json:"image_url,omitempty"`
	ReleaseYear      int      `json:"release_year,omitempty"`
}

// FromDomainContent converts domain.Content to ContentResponse.
func FromDomainContent(c *domain.Content) ContentResponse {
	return ContentResponse{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		ShortDescription: c.ShortDescription,
		Type:             string(c.Type),
		Genres:           c.Genres,
		Categories:       c.Categories,
		ViewCount:        c.ViewCount,
		AverageRating:    c.AverageRating,
		Featured:         c.Featured,
		Trending:         c.Trending,
		ImageURL:         c.ImageURL,
		ReleaseYear:      c.ReleaseYear(),
	}
}

// ResultResponse is one scored search hit.
type ResultResponse struct {
	Content   ContentResponse `json:"content"`
	Relevance float64         `json:"relevance"`
	Tier      string          `json:"tier,omitempty"`
}

// SearchMetadataResponse describes how the query was processed.
type SearchMetadataResponse struct {
	OriginalQuery  string `json:"originalQuery"`
	ProcessedQuery string `json:"processedQuery"`
	Language       string `json:"language"`
	SearchType     string `json:"searchType"`
}

// SearchData is the data envelope of the full search response.
type SearchData struct {
	Results        []ResultResponse       `json:"results"`
	Total          int                    `json:"total"`
	Suggestions    []string               `json:"suggestions"`
	SearchMetadata SearchMetadataResponse `json:"searchMetadata"`
}

// PaginationMeta holds pagination metadata.
type PaginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// SearchResponse represents the full search response.
type SearchResponse struct {
	Success    bool           `json:"success"`
	Data       SearchData     `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// FromSearchPayload converts the computed search payload to the response
// envelope, deriving page counts from the requested pagination.
func FromSearchPayload(payload *service.SearchPayload, page, limit int) SearchResponse {
	results := make([]ResultResponse, len(payload.Results))
	for i, r := range payload.Results {
		results[i] = ResultResponse{
			Content:   FromDomainContent(r.Content),
			Relevance: r.Relevance,
			Tier:      string(r.Tier),
		}
	}

	pages := 0
	if limit > 0 {
		pages = (payload.Total + limit - 1) / limit
	}

	return SearchResponse{
		Success: true,
		Data: SearchData{
			Results:     results,
			Total:       payload.Total,
			Suggestions: payload.Suggestions,
			SearchMetadata: SearchMetadataResponse{
				OriginalQuery:  payload.Metadata.OriginalQuery,
				ProcessedQuery: payload.Metadata.ProcessedQuery,
				Language:       string(payload.Metadata.Language),
				SearchType:     string(payload.Metadata.SearchType),
			},
		},
		Pagination: PaginationMeta{
			Page:  page,
			Limit: limit,
			Total: payload.Total,
			Pages: pages,
		},
	}
}

// PersonResponse is one cast/crew match in the quick search response.
type PersonResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	KnownFor string `json:"known_for,omitempty"`
}

// QuickData is the data envelope of the quick search response.
type QuickData struct {
	Contents    []ResultResponse `json:"contents"`
	People      []PersonResponse `json:"people"`
	Suggestions []string         `json:"suggestions"`
}

// QuickResponse represents the quick search (autocomplete) response.
type QuickResponse struct {
	Success bool      `json:"success"`
	Data    QuickData `json:"data"`
}

// FromQuickResult converts domain.QuickResult to QuickResponse.
func FromQuickResult(result *domain.QuickResult) QuickResponse {
	contents := make([]ResultResponse, len(result.Contents))
	for i, r := range result.Contents {
		contents[i] = ResultResponse{
			Content:   FromDomainContent(r.Content),
			Relevance: r.Relevance,
		}
	}

	people := make([]PersonResponse, len(result.People))
	for i, p := range result.People {
		people[i] = PersonResponse{
			ID:       p.ID,
			Name:     p.Name,
			Role:     p.Role,
			KnownFor: p.KnownFor,
		}
	}

	return QuickResponse{
		Success: true,
		Data: QuickData{
			Contents:    contents,
			People:      people,
			Suggestions: result.Suggestions,
		},
	}
}

// AnalyticsResponse represents the search analytics response.
type AnalyticsResponse struct {
	Success bool               `json:"success"`
	Data    *service.Analytics `json:"data"`
}

// MessageResponse represents a simple success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Suggestions carry the static
// fallback list when a search request arrives without a query.
type ErrorResponse struct {
	Success     bool        `json:"success"`
	Error       string      `json:"error"`
	Code        string      `json:"code,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
	Details     interface{} `json:"details,omitempty"`
}
