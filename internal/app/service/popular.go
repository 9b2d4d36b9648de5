package service

import (
	"sync"
)

// DefaultPopularSearches seeds the popular-search list until the trends
// provider delivers a fresh one. Terms reflect the platform's most common
// queries, including the local "agasobanuye" (narrated) catalog.
var DefaultPopularSearches = []string{
	"action movies",
	"agasobanuye",
	"comedy",
	"love story",
	"series",
	"gospel music",
	"documentary",
	"kinyarwanda movies",
}

// PopularList holds the current popular-search terms. The refresh job swaps
// the list in; the suggestion generator reads it. Safe for concurrent use.
type PopularList struct {
	mu    sync.RWMutex
	terms []string
}

// NewPopularList creates a PopularList seeded with the given terms.
func NewPopularList(seed []string) *PopularList {
	terms := make([]string, len(seed))
	copy(terms, seed)

	return &PopularList{terms: terms}
}

// Popular returns a copy of the current list.
func (p *PopularList) Popular() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]string, len(p.terms))
	copy(out, p.terms)

	return out
}

// Replace swaps in a freshly fetched list. Empty fetches are ignored so a
// degraded trends feed never wipes out the working list.
func (p *PopularList) Replace(terms []string) {
	if len(terms) == 0 {
		return
	}

	fresh := make([]string, len(terms))
	copy(fresh, terms)

	p.mu.Lock()
	p.terms = fresh
	p.mu.Unlock()
}
