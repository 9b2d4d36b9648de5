package domain

import (
	"context"
	"time"
)

// CatalogRepository defines read access to the published, publicly visible
// catalog. Implementations: internal/infra/postgres/repository.go
type CatalogRepository interface {
	// SearchTokens finds eligible records matching any of the given tokens
	// against title, description or short description (exact tier input).
	// At most limit candidate rows are returned; scoring happens in-process.
	SearchTokens(ctx context.Context, tokens []string, filters Filters, limit int) ([]*Content, error)

	// SearchPhrase finds eligible records containing the whole phrase in
	// title or description (partial tier input).
	SearchPhrase(ctx context.Context, phrase string, filters Filters, limit int) ([]*Content, error)

	// TitleIndex loads the id/title/type projection of the whole eligible
	// catalog for the fuzzy tier's in-process similarity scan.
	TitleIndex(ctx context.Context) ([]TitleEntry, error)

	// GetByIDs fetches full records for the given ids, preserving the input
	// order. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*Content, error)

	// MatchTitles finds eligible records whose title contains the query,
	// for the quick/autocomplete pipeline.
	MatchTitles(ctx context.Context, query string, limit int) ([]*Content, error)

	// TitlesContaining returns up to limit distinct eligible titles
	// containing the query, for suggestion generation.
	TitlesContaining(ctx context.Context, query string, limit int) ([]string, error)

	// CountEligible returns the size of the searchable catalog.
	CountEligible(ctx context.Context) (int64, error)
}

// PeopleRepository defines the name lookup across cast/crew joined to
// eligible content, used by quick search.
type PeopleRepository interface {
	SearchByName(ctx context.Context, query string, limit int) ([]Person, error)
}

// Cache defines the interface for response caching.
// Implementations: internal/infra/memcache (default), internal/infra/redis.
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL, overwriting any previous entry
	// for the key (last write wins).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Clear removes all cached values and reports how many were dropped.
	Clear(ctx context.Context) (int, error)

	// Len returns the number of live entries.
	Len(ctx context.Context) (int, error)
}

// Retriever is one retrieval strategy of the tiered engine. The engine runs
// retrievers in strict order and stops at the first non-empty result set; a
// retriever that fails is treated as empty, never as fatal.
type Retriever interface {
	// Tier identifies the strategy (exact, partial, fuzzy).
	Tier() Tier

	// Retrieve runs the strategy for the normalized query in params.
	// Returns one page of scored results plus the total match count.
	// An empty slice with nil error means "fall through to the next tier".
	Retrieve(ctx context.Context, params SearchParams) ([]ScoredContent, int, error)
}

// TrendsProvider fetches the popular-search terms list from the platform's
// analytics collaborator. Implementations: internal/infra/trends.
type TrendsProvider interface {
	// Name returns the unique identifier for this provider.
	Name() string

	// FetchPopular retrieves the current popular search terms.
	FetchPopular(ctx context.Context) ([]string, error)

	// HealthCheck verifies the provider is accessible.
	HealthCheck(ctx context.Context) error
}

// PopularSource exposes the current popular-search list to the suggestion
// generator. Implementations must be safe for concurrent use.
type PopularSource interface {
	Popular() []string
}
