package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-search-service/internal/domain"
	"media-search-service/internal/validator"
)

func newTestValidator() *validator.Validator {
	return validator.New()
}

// TestSearchRequest_Validation_Valid tests valid search requests.
func TestSearchRequest_Validation_Valid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  SearchRequest
	}{
		{
			name: "query only",
			req:  SearchRequest{Query: "batman"},
		},
		{
			name: "full valid request",
			req: SearchRequest{
				Query:    "kinyarwanda movies",
				Type:     "movie",
				Genre:    "action",
				Year:     2022,
				Language: "rw",
				Page:     2,
				Limit:    10,
			},
		},
		{
			name: "all content types",
			req:  SearchRequest{Query: "x", Type: "documentary"},
		},
		{
			name: "auto language",
			req:  SearchRequest{Query: "x", Language: "auto"},
		},
		{
			name: "max limit",
			req:  SearchRequest{Query: "x", Limit: 50},
		},
		{
			name: "query at max length",
			req:  SearchRequest{Query: string(make([]byte, 200))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			assert.NoError(t, err)
		})
	}
}

// TestSearchRequest_Validation_Invalid tests invalid search requests.
func TestSearchRequest_Validation_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name        string
		req         SearchRequest
		expectField string
		expectTag   string
	}{
		{
			name:        "query too long",
			req:         SearchRequest{Query: string(make([]byte, 201))},
			expectField: "Query",
			expectTag:   "max",
		},
		{
			name:        "invalid type",
			req:         SearchRequest{Query: "x", Type: "podcast"},
			expectField: "Type",
			expectTag:   "oneof",
		},
		{
			name:        "invalid language",
			req:         SearchRequest{Query: "x", Language: "fr"},
			expectField: "Language",
			expectTag:   "oneof",
		},
		{
			name:        "year before catalog range",
			req:         SearchRequest{Query: "x", Year: 1850},
			expectField: "Year",
			expectTag:   "min",
		},
		{
			name:        "negative page",
			req:         SearchRequest{Query: "x", Page: -1},
			expectField: "Page",
			expectTag:   "min",
		},
		{
			name:        "limit too large",
			req:         SearchRequest{Query: "x", Limit: 51},
			expectField: "Limit",
			expectTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			require.Error(t, err)

			validationErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "expected ValidationErrors type")
			require.NotEmpty(t, validationErrs)

			found := false
			for _, ve := range validationErrs {
				if ve.Field == tt.expectField {
					found = true
					assert.Equal(t, tt.expectTag, ve.Tag)
				}
			}
			assert.True(t, found, "expected error for field %s", tt.expectField)
		})
	}
}

// TestSearchRequest_ToSearchParams tests conversion to domain SearchParams.
func TestSearchRequest_ToSearchParams(t *testing.T) {
	tests := []struct {
		name     string
		req      SearchRequest
		expected domain.SearchParams
	}{
		{
			name: "defaults applied",
			req:  SearchRequest{Query: "batman"},
			expected: domain.SearchParams{
				Query:    "batman",
				Language: domain.LanguageAuto,
				Page:     1,
				Limit:    20,
			},
		},
		{
			name: "full request converts correctly",
			req: SearchRequest{
				Query:    "batman",
				Type:     "series",
				Genre:    "action",
				Year:     2020,
				Language: "en",
				Page:     3,
				Limit:    10,
			},
			expected: domain.SearchParams{
				Query:    "batman",
				Language: domain.LanguageEnglish,
				Filters: domain.Filters{
					Type:  domain.ContentTypeSeries,
					Genre: "action",
					Year:  2020,
				},
				Page:  3,
				Limit: 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.req.ToSearchParams())
		})
	}
}

// TestQuickSearchRequest_Validation tests QuickSearchRequest validation.
func TestQuickSearchRequest_Validation(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Validate(&QuickSearchRequest{Query: "bat"}))
	assert.NoError(t, v.Validate(&QuickSearchRequest{Query: "bat", Limit: 25}))
	assert.Error(t, v.Validate(&QuickSearchRequest{Query: "bat", Limit: 26}))
	assert.Error(t, v.Validate(&QuickSearchRequest{Query: string(make([]byte, 201))}))
}
