package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"media-search-service/internal/domain"
)

func newTestSuggester(catalog *fakeCatalog, popular []string) *Suggester {
	return NewSuggester(catalog, NewPopularList(popular), zap.NewNop())
}

func TestSuggest_MisspellingCorrectionFirst(t *testing.T) {
	s := newTestSuggester(&fakeCatalog{}, nil)

	got := s.Suggest(context.Background(), "acton", nil)
	require.NotEmpty(t, got)
	assert.Equal(t, "action", got[0])
}

func TestSuggest_VowelVariantsForShortQueries(t *testing.T) {
	s := newTestSuggester(&fakeCatalog{}, nil)

	got := s.Suggest(context.Background(), "bat", nil)
	// "bat" has no table correction; the three vowel variants lead.
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, []string{"bet", "bit", "bot"}, got[:3])
}

func TestSuggest_NoVowelVariantsForLongQueries(t *testing.T) {
	s := newTestSuggester(&fakeCatalog{}, nil)

	got := s.Suggest(context.Background(), "interstellar", nil)
	for _, suggestion := range got {
		assert.NotEqual(t, 12, len(suggestion), "no single-letter swaps of a long query expected: %q", suggestion)
	}
}

func TestSuggest_ResultDerivedGenresAndTypes(t *testing.T) {
	s := newTestSuggester(&fakeCatalog{}, nil)

	results := []domain.ScoredContent{
		{Content: movie("1", "Heat", withGenres("Crime", "Drama"))},
		{Content: movie("2", "Casino", withGenres("Crime"))},
		{Content: movie("3", "Fleabag", withType(domain.ContentTypeSeries), withGenres("Drama"))},
	}

	got := s.Suggest(context.Background(), "pacino", results)

	assert.Contains(t, got, "pacino crime")
	assert.Contains(t, got, "crime movies")
	assert.Contains(t, got, "movie pacino")
	assert.Contains(t, got, "series pacino")
}

func TestSuggest_SkipsGenreAlreadyInQuery(t *testing.T) {
	s := newTestSuggester(&fakeCatalog{}, nil)

	results := []domain.ScoredContent{
		{Content: movie("1", "Heat", withGenres("Crime"))},
	}

	got := s.Suggest(context.Background(), "crime classics", results)
	assert.NotContains(t, got, "crime classics crime")
	assert.NotContains(t, got, "crime movies")
}

func TestSuggest_PopularOverlapCappedAtTwo(t *testing.T) {
	popular := []string{"action movies", "action series", "action classics", "comedy"}
	s := newTestSuggester(&fakeCatalog{}, popular)

	got := s.Suggest(context.Background(), "action", nil)

	overlapping := 0
	for _, suggestion := range got {
		if strings.Contains(suggestion, "action") {
			overlapping++
		}
	}
	assert.Equal(t, 2, overlapping, "at most two popular-search suggestions")
}

func TestSuggest_TitleSuggestionsFromCatalog(t *testing.T) {
	catalog := &fakeCatalog{contents: []*domain.Content{
		movie("1", "Batman Begins"),
		movie("2", "Batman Returns"),
	}}
	s := newTestSuggester(catalog, nil)

	got := s.Suggest(context.Background(), "batman", nil)
	assert.Contains(t, got, "Batman Begins")
	assert.Contains(t, got, "Batman Returns")
}

func TestSuggest_CappedAtEightAndDeduplicated(t *testing.T) {
	catalog := &fakeCatalog{contents: []*domain.Content{
		movie("1", "Bat Cave"),
		movie("2", "Bat Signal"),
		movie("3", "Bat Night"),
	}}
	popular := []string{"bat movies", "bat series"}
	s := newTestSuggester(catalog, popular)

	results := []domain.ScoredContent{
		{Content: movie("4", "Batman", withGenres("Action", "Crime", "Thriller"))},
	}

	got := s.Suggest(context.Background(), "bat", results)

	assert.LessOrEqual(t, len(got), 8)

	seen := make(map[string]struct{})
	for _, suggestion := range got {
		key := strings.ToLower(suggestion)
		_, dup := seen[key]
		assert.False(t, dup, "duplicate suggestion %q", suggestion)
		seen[key] = struct{}{}
	}
}

func TestSuggest_EmptyQueryNoResults(t *testing.T) {
	s := newTestSuggester(&fakeCatalog{}, nil)

	got := s.Suggest(context.Background(), "", nil)
	assert.Empty(t, got)
	assert.NotNil(t, got, "suggestions marshal as [] not null")
}

func TestFallback_CappedAtEight(t *testing.T) {
	popular := make([]string, 12)
	for i := range popular {
		popular[i] = strings.Repeat("x", i+1)
	}
	s := newTestSuggester(&fakeCatalog{}, popular)

	assert.Len(t, s.Fallback(), 8)
}

func TestPopularList_ReplaceIgnoresEmpty(t *testing.T) {
	list := NewPopularList([]string{"action"})

	list.Replace(nil)
	assert.Equal(t, []string{"action"}, list.Popular())

	list.Replace([]string{"comedy", "drama"})
	assert.Equal(t, []string{"comedy", "drama"}, list.Popular())
}
