package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"media-search-service/internal/domain"
)

// Suggestion generation limits.
const (
	maxSuggestions      = 8
	maxVowelVariants    = 3
	maxGenreSuggestions = 3
	maxPopularOverlaps  = 2
	maxTitleSuggestions = 3
)

// Suggester builds up to eight alternative query strings from spelling
// corrections, result-derived terms, popular searches and catalog titles.
type Suggester struct {
	repo    domain.CatalogRepository
	popular domain.PopularSource
	logger  *zap.Logger
}

// NewSuggester creates a Suggester.
func NewSuggester(repo domain.CatalogRepository, popular domain.PopularSource, logger *zap.Logger) *Suggester {
	return &Suggester{
		repo:    repo,
		popular: popular,
		logger:  logger,
	}
}

// Suggest generates suggestions for the original (pre-normalization) query,
// using the combined result set of all tiers (possibly empty). The output is
// deduplicated, ordered by source priority and capped at eight entries.
// Store failures only cost the title suggestions; everything else is local.
func (s *Suggester) Suggest(ctx context.Context, originalQuery string, results []domain.ScoredContent) []string {
	query := strings.ToLower(strings.TrimSpace(originalQuery))

	set := newSuggestionSet(maxSuggestions)

	// 1. Direct misspelling-table correction of the literal query.
	if fixed, ok := domain.CorrectSpelling(query); ok {
		set.add(fixed)
	}

	// 2. Vowel-substitution variants for short queries.
	for _, v := range domain.VowelVariants(query, maxVowelVariants) {
		set.add(v)
	}

	// 3. Result-derived genre and content-type suggestions.
	if len(results) > 0 {
		s.addResultDerived(set, query, results)
	}

	// 4. Popular searches overlapping the query.
	added := 0
	for _, p := range s.popular.Popular() {
		if added >= maxPopularOverlaps || set.full() {
			break
		}
		if overlaps(p, query) && set.add(p) {
			added++
		}
	}

	// 5. Catalog titles containing the query.
	if !set.full() {
		titles, err := s.repo.TitlesContaining(ctx, query, maxTitleSuggestions)
		if err != nil {
			s.logger.Warn("title suggestions unavailable",
				zap.String("query", query),
				zap.Error(err),
			)
		}
		for _, title := range titles {
			set.add(title)
		}
	}

	return set.items()
}

// Fallback returns static popular-search suggestions for invalid requests
// and total retrieval failures.
func (s *Suggester) Fallback() []string {
	popular := s.popular.Popular()
	if len(popular) > maxSuggestions {
		popular = popular[:maxSuggestions]
	}
	return popular
}

// addResultDerived appends suggestions built from the genres and content
// types present in the result set.
func (s *Suggester) addResultDerived(set *suggestionSet, query string, results []domain.ScoredContent) {
	for _, genre := range topGenres(results, maxGenreSuggestions) {
		// A genre already present in the query adds nothing.
		if strings.Contains(query, genre) {
			continue
		}
		set.add(query + " " + genre)
		set.add(genre + " movies")
	}

	for _, ct := range distinctTypes(results) {
		if strings.Contains(query, ct) {
			continue
		}
		set.add(ct + " " + query)
	}
}

// topGenres returns the most common genre names across results, lowercased,
// most frequent first. Ties break alphabetically for determinism.
func topGenres(results []domain.ScoredContent, max int) []string {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Content == nil {
			continue
		}
		for _, g := range r.Content.Genres {
			counts[strings.ToLower(g)]++
		}
	}

	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if len(genres) > max {
		genres = genres[:max]
	}
	return genres
}

// distinctTypes returns the content types present in results, in first-seen
// order.
func distinctTypes(results []domain.ScoredContent) []string {
	seen := make(map[string]struct{})
	types := make([]string, 0, 2)
	for _, r := range results {
		if r.Content == nil || r.Content.Type == "" {
			continue
		}
		ct := string(r.Content.Type)
		if _, ok := seen[ct]; ok {
			continue
		}
		seen[ct] = struct{}{}
		types = append(types, ct)
	}
	return types
}

// overlaps reports whether a popular term and the query share text in either
// direction.
func overlaps(popular, query string) bool {
	if popular == "" || query == "" {
		return false
	}
	return strings.Contains(popular, query) || strings.Contains(query, popular)
}

// suggestionSet is an ordered, deduplicated, capped string set.
type suggestionSet struct {
	max   int
	seen  map[string]struct{}
	order []string
}

func newSuggestionSet(max int) *suggestionSet {
	return &suggestionSet{
		max:  max,
		seen: make(map[string]struct{}, max),
	}
}

// add inserts a suggestion unless it is empty, already present or the set is
// full. Reports whether the entry was inserted.
func (s *suggestionSet) add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || s.full() {
		return false
	}
	key := strings.ToLower(v)
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, v)
	return true
}

func (s *suggestionSet) full() bool {
	return len(s.order) >= s.max
}

func (s *suggestionSet) items() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
