// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"media-search-service/internal/domain"
)

// Config holds search pipeline settings.
type Config struct {
	// CacheTTL is how long computed payloads stay servable (default 5m).
	CacheTTL time.Duration

	// TierTimeout demotes a slow tier to "empty" so the pipeline can fall
	// through instead of stalling the request.
	TierTimeout time.Duration

	// QuickLimit is the default quick-search result count.
	QuickLimit int

	// QuickPeopleLimit caps the quick-search name lookup.
	QuickPeopleLimit int
}

// SearchMetadata describes how a query was processed.
type SearchMetadata struct {
	OriginalQuery  string          `json:"originalQuery"`
	ProcessedQuery string          `json:"processedQuery"`
	Language       domain.Language `json:"language"`
	SearchType     domain.Tier     `json:"searchType"`
}

// SearchPayload is the full computed response for one search request. It is
// what gets cached: a hit returns the stored payload unchanged, embedded
// suggestions and metadata included.
type SearchPayload struct {
	Results     []domain.ScoredContent `json:"results"`
	Total       int                    `json:"total"`
	Suggestions []string               `json:"suggestions"`
	Metadata    SearchMetadata         `json:"metadata"`
}

// SearchService runs the tiered retrieval pipeline behind the result cache.
type SearchService struct {
	retrievers []domain.Retriever
	suggester  *Suggester
	catalog    domain.CatalogRepository
	people     domain.PeopleRepository
	cache      domain.Cache
	cfg        Config
	logger     *zap.Logger
}

// NewSearchService creates a SearchService. retrievers must be ordered by
// tier; the engine stops at the first one returning results. cache may be
// nil to disable caching.
func NewSearchService(
	retrievers []domain.Retriever,
	suggester *Suggester,
	catalog domain.CatalogRepository,
	people domain.PeopleRepository,
	cache domain.Cache,
	cfg Config,
	logger *zap.Logger,
) *SearchService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.TierTimeout <= 0 {
		cfg.TierTimeout = 2 * time.Second
	}
	if cfg.QuickLimit <= 0 {
		cfg.QuickLimit = 10
	}
	if cfg.QuickPeopleLimit <= 0 {
		cfg.QuickPeopleLimit = 5
	}

	return &SearchService{
		retrievers: retrievers,
		suggester:  suggester,
		catalog:    catalog,
		people:     people,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// Search runs the full pipeline for one request: cache lookup, tiered
// retrieval, suggestion generation, cache write. The boolean reports whether
// the payload was served from cache.
//
// Tier failures are logged and demoted to empty result sets; Search itself
// only fails on a broken cache payload, never on store errors.
func (s *SearchService) Search(ctx context.Context, params domain.SearchParams) (*SearchPayload, bool, error) {
	params.Validate()

	normalized := domain.Normalize(params.Query, params.Language)
	language := params.Language
	if language == domain.LanguageAuto {
		language = domain.DetectLanguage(params.Query)
	}

	key := searchCacheKey(normalized, params)
	if payload, ok := s.cachedPayload(ctx, key); ok {
		return payload, true, nil
	}

	results, total, tier := s.retrieve(ctx, normalized, params)
	suggestions := s.suggester.Suggest(ctx, params.Query, results)

	payload := &SearchPayload{
		Results:     results,
		Total:       total,
		Suggestions: suggestions,
		Metadata: SearchMetadata{
			OriginalQuery:  params.Query,
			ProcessedQuery: normalized,
			Language:       language,
			SearchType:     tier,
		},
	}

	s.storePayload(ctx, key, payload)

	return payload, false, nil
}

// retrieve drives the ordered tier loop: strictly in order, short-circuiting
// on the first non-empty result set. A failing or slow tier yields an empty
// set and the loop proceeds; if every tier comes up empty the caller still
// generates suggestions.
func (s *SearchService) retrieve(ctx context.Context, normalized string, params domain.SearchParams) ([]domain.ScoredContent, int, domain.Tier) {
	tierParams := params
	tierParams.Query = normalized

	for _, r := range s.retrievers {
		tierCtx, cancel := context.WithTimeout(ctx, s.cfg.TierTimeout)
		results, total, err := r.Retrieve(tierCtx, tierParams)
		cancel()

		if err != nil {
			s.logger.Warn("retrieval tier failed, falling through",
				zap.String("tier", string(r.Tier())),
				zap.String("query", normalized),
				zap.Error(err),
			)
			continue
		}

		if len(results) > 0 {
			s.logger.Debug("retrieval tier matched",
				zap.String("tier", string(r.Tier())),
				zap.String("query", normalized),
				zap.Int("total", total),
			)
			return results, total, r.Tier()
		}
	}

	return []domain.ScoredContent{}, 0, domain.TierNone
}

// QuickSearch is the lightweight type-ahead pipeline: prefix-weighted title
// matches plus a best-effort people lookup, cached under its own key.
func (s *SearchService) QuickSearch(ctx context.Context, query string, limit int) (*domain.QuickResult, bool, error) {
	if limit <= 0 {
		limit = s.cfg.QuickLimit
	}
	if limit > 25 {
		limit = 25
	}

	normalized := domain.Normalize(query, domain.LanguageAuto)

	key := fmt.Sprintf("quick|%s|%d", normalized, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var cached domain.QuickResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
			s.logger.Warn("discarding corrupt quick cache entry", zap.String("key", key))
		}
	}

	contents := s.quickContents(ctx, normalized, limit)
	people := s.quickPeople(ctx, normalized)
	suggestions := s.suggester.Suggest(ctx, query, contents)

	result := &domain.QuickResult{
		Contents:    contents,
		People:      people,
		Suggestions: suggestions,
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
				s.logger.Warn("quick cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return result, false, nil
}

// quickContents scores title matches with the prefix-weighted formula.
func (s *SearchService) quickContents(ctx context.Context, normalized string, limit int) []domain.ScoredContent {
	if normalized == "" {
		return []domain.ScoredContent{}
	}

	matches, err := s.catalog.MatchTitles(ctx, normalized, limit)
	if err != nil {
		s.logger.Warn("quick title match failed", zap.String("query", normalized), zap.Error(err))
		return []domain.ScoredContent{}
	}

	scored := make([]domain.ScoredContent, 0, len(matches))
	for _, c := range matches {
		scored = append(scored, domain.ScoredContent{
			Content:   c,
			Relevance: domain.QuickScore(c.Title, normalized),
		})
	}
	sortByRelevance(scored)

	return scored
}

// quickPeople runs the best-effort cast/crew name lookup.
func (s *SearchService) quickPeople(ctx context.Context, normalized string) []domain.Person {
	if normalized == "" || s.people == nil {
		return []domain.Person{}
	}

	people, err := s.people.SearchByName(ctx, normalized, s.cfg.QuickPeopleLimit)
	if err != nil {
		s.logger.Warn("people lookup failed", zap.String("query", normalized), zap.Error(err))
		return []domain.Person{}
	}
	if people == nil {
		people = []domain.Person{}
	}

	return people
}

// FallbackSuggestions returns the static popular-search suggestions used for
// invalid requests.
func (s *SearchService) FallbackSuggestions() []string {
	return s.suggester.Fallback()
}

// Analytics reports cache and popularity metrics for the admin surface.
type Analytics struct {
	CacheEntries    int      `json:"cache_entries"`
	CacheHits       int64    `json:"cache_hits"`
	CacheMisses     int64    `json:"cache_misses"`
	CatalogSize     int64    `json:"catalog_size"`
	PopularSearches []string `json:"popular_searches"`
}

// cacheStats is implemented by cache backends that track hit/miss counters.
type cacheStats interface {
	Stats() (hits, misses int64)
}

// Analytics gathers the current search analytics snapshot.
func (s *SearchService) Analytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{
		PopularSearches: s.suggester.Fallback(),
	}

	if s.cache != nil {
		n, err := s.cache.Len(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading cache size: %w", err)
		}
		a.CacheEntries = n

		if stats, ok := s.cache.(cacheStats); ok {
			a.CacheHits, a.CacheMisses = stats.Stats()
		}
	}

	size, err := s.catalog.CountEligible(ctx)
	if err != nil {
		s.logger.Warn("catalog size unavailable", zap.Error(err))
	} else {
		a.CatalogSize = size
	}

	return a, nil
}

// ClearCache empties the result cache and reports the number of entries
// removed.
func (s *SearchService) ClearCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}

	return s.cache.Clear(ctx)
}

// cachedPayload fetches and decodes a cached search payload.
func (s *SearchService) cachedPayload(ctx context.Context, key string) (*SearchPayload, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var payload SearchPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return &payload, true
}

// storePayload writes a computed payload to the cache. Write failures are
// logged, never surfaced: caching is an optimization.
func (s *SearchService) storePayload(ctx context.Context, key string, payload *SearchPayload) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshaling search payload", zap.Error(err))
		return
	}

	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// searchCacheKey builds the cache key from everything that shapes the
// payload: normalized query, pagination, filters and language.
func searchCacheKey(normalized string, p domain.SearchParams) string {
	return fmt.Sprintf("search|%s|%d|%d|%s|%s|%d|%s",
		normalized, p.Page, p.Limit,
		p.Filters.Type, p.Filters.Genre, p.Filters.Year,
		p.Language,
	)
}
