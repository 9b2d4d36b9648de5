package service

import (
	"context"
	"sort"
	"strings"

	"media-search-service/internal/domain"
)

// candidateCap bounds how many rows a tier pulls from the catalog store for
// in-process scoring. Candidates are pre-ordered by view count, so the cap
// drops the least popular rows first.
const candidateCap = 500

// ExactRetriever is tier 1: the normalized query is split into tokens and
// matched disjunctively against title, description and short description.
// Rows are scored with the exact-tier formula and rows scoring 0 are dropped.
type ExactRetriever struct {
	repo domain.CatalogRepository
}

// NewExactRetriever creates the exact tier.
func NewExactRetriever(repo domain.CatalogRepository) *ExactRetriever {
	return &ExactRetriever{repo: repo}
}

// Tier identifies the strategy.
func (r *ExactRetriever) Tier() domain.Tier {
	return domain.TierExact
}

// Retrieve runs the exact tier for the normalized query in params.
func (r *ExactRetriever) Retrieve(ctx context.Context, params domain.SearchParams) ([]domain.ScoredContent, int, error) {
	phrase := params.Query
	tokens := strings.Fields(phrase)
	if len(tokens) == 0 {
		return nil, 0, nil
	}

	candidates, err := r.repo.SearchTokens(ctx, tokens, params.Filters, candidateCap)
	if err != nil {
		return nil, 0, err
	}

	scored := make([]domain.ScoredContent, 0, len(candidates))
	for _, c := range candidates {
		score := domain.ExactScore(c, tokens[0], phrase)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredContent{
			Content:   c,
			Relevance: score,
			Tier:      domain.TierExact,
		})
	}

	sortByRelevance(scored)

	return paginate(scored, params.Offset(), params.Limit), len(scored), nil
}

// PartialRetriever is tier 2: the whole normalized phrase is matched as a
// substring against title and description. Entered only for queries of at
// least two characters.
type PartialRetriever struct {
	repo domain.CatalogRepository
}

// NewPartialRetriever creates the partial tier.
func NewPartialRetriever(repo domain.CatalogRepository) *PartialRetriever {
	return &PartialRetriever{repo: repo}
}

// Tier identifies the strategy.
func (r *PartialRetriever) Tier() domain.Tier {
	return domain.TierPartial
}

// Retrieve runs the partial tier for the normalized query in params.
func (r *PartialRetriever) Retrieve(ctx context.Context, params domain.SearchParams) ([]domain.ScoredContent, int, error) {
	phrase := params.Query
	if len(phrase) < 2 {
		return nil, 0, nil
	}

	candidates, err := r.repo.SearchPhrase(ctx, phrase, params.Filters, candidateCap)
	if err != nil {
		return nil, 0, err
	}

	scored := make([]domain.ScoredContent, 0, len(candidates))
	for _, c := range candidates {
		score := domain.PartialScore(c, phrase)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredContent{
			Content:   c,
			Relevance: score,
			Tier:      domain.TierPartial,
		})
	}

	sortByRelevance(scored)

	return paginate(scored, params.Offset(), params.Limit), len(scored), nil
}

// FuzzyRetriever is tier 3: the eligible title corpus is scanned in-process
// and titles within the similarity threshold are re-fetched in rank order.
// Pagination does not apply; the tier returns at most limit results.
type FuzzyRetriever struct {
	repo      domain.CatalogRepository
	sim       domain.Similarity
	threshold float64
}

// NewFuzzyRetriever creates the fuzzy tier with the given similarity metric
// and acceptance threshold.
func NewFuzzyRetriever(repo domain.CatalogRepository, sim domain.Similarity, threshold float64) *FuzzyRetriever {
	return &FuzzyRetriever{repo: repo, sim: sim, threshold: threshold}
}

// Tier identifies the strategy.
func (r *FuzzyRetriever) Tier() domain.Tier {
	return domain.TierFuzzy
}

// Retrieve runs the fuzzy tier for the normalized query in params.
func (r *FuzzyRetriever) Retrieve(ctx context.Context, params domain.SearchParams) ([]domain.ScoredContent, int, error) {
	phrase := params.Query
	if phrase == "" {
		return nil, 0, nil
	}

	entries, err := r.repo.TitleIndex(ctx)
	if err != nil {
		return nil, 0, err
	}

	type match struct {
		id    string
		score float64
	}

	matches := make([]match, 0)
	for _, e := range entries {
		score := r.sim.Score(phrase, strings.ToLower(e.Title))
		if score >= r.threshold {
			matches = append(matches, match{id: e.ID, score: score})
		}
	}

	if len(matches) == 0 {
		return nil, 0, nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	total := len(matches)
	if len(matches) > params.Limit {
		matches = matches[:params.Limit]
	}

	ids := make([]string, len(matches))
	scoreByID := make(map[string]float64, len(matches))
	for i, m := range matches {
		ids[i] = m.id
		scoreByID[m.id] = m.score
	}

	// Re-fetch full records for exactly these ids, preserving rank order.
	contents, err := r.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	scored := make([]domain.ScoredContent, 0, len(contents))
	for _, c := range contents {
		scored = append(scored, domain.ScoredContent{
			Content:   c,
			Relevance: scoreByID[c.ID],
			Tier:      domain.TierFuzzy,
		})
	}

	return scored, total, nil
}

// sortByRelevance orders results by relevance, breaking ties by view count.
func sortByRelevance(results []domain.ScoredContent) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Relevance != results[j].Relevance {
			return results[i].Relevance > results[j].Relevance
		}
		return results[i].Content.ViewCount > results[j].Content.ViewCount
	})
}

// paginate slices one page out of the full scored set.
func paginate(results []domain.ScoredContent, offset, limit int) []domain.ScoredContent {
	if offset >= len(results) {
		return []domain.ScoredContent{}
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}
