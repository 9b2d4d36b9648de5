// Package domain contains the core business logic and entities.
package domain

import (
	"strings"
)

// Relevance weights for the exact tier. The constants are part of the
// observable contract: result ordering depends on them, so rebalancing is a
// product decision, not a refactor.
const (
	exactTitleTokenWeight  = 100
	exactTitlePhraseWeight = 200
	exactDescTokenWeight   = 40
	exactFeaturedWeight    = 30
	exactTrendingWeight    = 25
	exactViewWeight        = 0.001
	exactRatingWeight      = 15
)

// Relevance weights for the partial tier.
const (
	partialTitleWeight    = 80
	partialDescWeight     = 30
	partialFeaturedWeight = 20
	partialTrendingWeight = 15
	partialViewWeight     = 0.001
	partialRatingWeight   = 10
)

// Prefix-weighted scores for the quick/autocomplete pipeline.
const (
	quickPrefixScore   = 100
	quickContainsScore = 80
	quickBaseScore     = 60
)

// ExactScore computes the exact-tier relevance for a record against the
// normalized query phrase and its first token.
//
// Formula:
//
//	100·[title contains firstToken] + 200·[title == phrase]
//	+ 40·[description contains firstToken]
//	+ 30·[featured] + 25·[trending]
//	+ 0.001·viewCount + 15·averageRating
//
// Rows scoring 0 are dropped from the exact tier.
func ExactScore(c *Content, firstToken, phrase string) float64 {
	if c == nil {
		return 0
	}

	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)

	var score float64
	if firstToken != "" && strings.Contains(title, firstToken) {
		score += exactTitleTokenWeight
	}
	if phrase != "" && title == phrase {
		score += exactTitlePhraseWeight
	}
	if firstToken != "" && strings.Contains(desc, firstToken) {
		score += exactDescTokenWeight
	}
	if c.Featured {
		score += exactFeaturedWeight
	}
	if c.Trending {
		score += exactTrendingWeight
	}
	score += exactViewWeight * float64(c.ViewCount)
	score += exactRatingWeight * c.AverageRating

	return score
}

// PartialScore computes the partial-tier relevance for a record against the
// whole normalized phrase.
//
// Formula:
//
//	80·[title contains phrase] + 30·[description contains phrase]
//	+ 20·[featured] + 15·[trending]
//	+ 0.001·viewCount + 10·averageRating
func PartialScore(c *Content, phrase string) float64 {
	if c == nil || phrase == "" {
		return 0
	}

	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)

	var score float64
	if strings.Contains(title, phrase) {
		score += partialTitleWeight
	}
	if strings.Contains(desc, phrase) {
		score += partialDescWeight
	}
	if c.Featured {
		score += partialFeaturedWeight
	}
	if c.Trending {
		score += partialTrendingWeight
	}
	score += partialViewWeight * float64(c.ViewCount)
	score += partialRatingWeight * c.AverageRating

	return score
}

// QuickScore computes the prefix-weighted autocomplete score for a title:
// 100 when the title starts with the query, 80 when it merely contains it,
// 60 otherwise.
func QuickScore(title, query string) float64 {
	t := strings.ToLower(title)
	q := strings.ToLower(query)

	switch {
	case strings.HasPrefix(t, q):
		return quickPrefixScore
	case strings.Contains(t, q):
		return quickContainsScore
	default:
		return quickBaseScore
	}
}

// Similarity scores how close two strings are, in [0, 1]. The fuzzy tier
// keeps titles scoring at or above its configured threshold.
//
// Kept as an interface so the heuristic can be swapped for a real edit
// distance metric without touching the retrieval engine.
type Similarity interface {
	Score(a, b string) float64
}

// ContainmentSimilarity is the default similarity heuristic: substring
// containment first, character overlap otherwise. Not an edit distance —
// cheap enough to run over the whole title corpus per request.
type ContainmentSimilarity struct{}

// Score orders a,b by length into longer/shorter, then returns 0.9 when
// longer contains shorter, 0.8 when shorter contains longer, and otherwise
// the fraction of shorter's characters that occur anywhere in longer.
func (ContainmentSimilarity) Score(a, b string) float64 {
	longer, shorter := a, b
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}

	if strings.Contains(longer, shorter) {
		return 0.9
	}
	if strings.Contains(shorter, longer) {
		return 0.8
	}
	if len(longer) == 0 {
		return 0
	}

	matched := 0
	for _, r := range shorter {
		if strings.ContainsRune(longer, r) {
			matched++
		}
	}

	return float64(matched) / float64(len(longer))
}
