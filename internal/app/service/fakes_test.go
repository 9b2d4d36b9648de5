package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"media-search-service/internal/domain"
)

// fakeCatalog is an in-memory domain.CatalogRepository and
// domain.PeopleRepository for unit tests. Matching mirrors the ILIKE
// semantics of the real repository closely enough for pipeline tests.
type fakeCatalog struct {
	contents []*domain.Content
	people   []domain.Person

	// per-method error injection
	failTokens bool
	failPhrase bool
	failIndex  bool
	failByIDs  bool
	failTitles bool
	failMatch  bool

	calls []string
}

var errStoreDown = errors.New("store unavailable")

func (f *fakeCatalog) record(method string) {
	f.calls = append(f.calls, method)
}

func (f *fakeCatalog) eligible() []*domain.Content {
	out := make([]*domain.Content, 0, len(f.contents))
	for _, c := range f.contents {
		if c.IsEligible() {
			out = append(out, c)
		}
	}
	return out
}

func matchesFilters(c *domain.Content, filters domain.Filters) bool {
	if filters.Type != "" && c.Type != filters.Type {
		return false
	}
	if filters.Genre != "" {
		found := false
		for _, g := range c.Genres {
			if strings.EqualFold(g, filters.Genre) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filters.Year != 0 && c.ReleaseYear() != filters.Year {
		return false
	}
	return true
}

func (f *fakeCatalog) SearchTokens(_ context.Context, tokens []string, filters domain.Filters, limit int) ([]*domain.Content, error) {
	f.record("SearchTokens")
	if f.failTokens {
		return nil, errStoreDown
	}

	var out []*domain.Content
	for _, c := range f.eligible() {
		if !matchesFilters(c, filters) {
			continue
		}
		haystack := strings.ToLower(c.Title + " " + c.Description + " " + c.ShortDescription)
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				out = append(out, c)
				break
			}
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) SearchPhrase(_ context.Context, phrase string, filters domain.Filters, limit int) ([]*domain.Content, error) {
	f.record("SearchPhrase")
	if f.failPhrase {
		return nil, errStoreDown
	}

	var out []*domain.Content
	for _, c := range f.eligible() {
		if !matchesFilters(c, filters) {
			continue
		}
		title := strings.ToLower(c.Title)
		desc := strings.ToLower(c.Description)
		if strings.Contains(title, phrase) || strings.Contains(desc, phrase) {
			out = append(out, c)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) TitleIndex(_ context.Context) ([]domain.TitleEntry, error) {
	f.record("TitleIndex")
	if f.failIndex {
		return nil, errStoreDown
	}

	entries := make([]domain.TitleEntry, 0, len(f.contents))
	for _, c := range f.eligible() {
		entries = append(entries, domain.TitleEntry{ID: c.ID, Title: c.Title, Type: c.Type})
	}
	return entries, nil
}

func (f *fakeCatalog) GetByIDs(_ context.Context, ids []string) ([]*domain.Content, error) {
	f.record("GetByIDs")
	if f.failByIDs {
		return nil, errStoreDown
	}

	byID := make(map[string]*domain.Content)
	for _, c := range f.eligible() {
		byID[c.ID] = c
	}

	var out []*domain.Content
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCatalog) MatchTitles(_ context.Context, query string, limit int) ([]*domain.Content, error) {
	f.record("MatchTitles")
	if f.failMatch {
		return nil, errStoreDown
	}

	var out []*domain.Content
	for _, c := range f.eligible() {
		if strings.Contains(strings.ToLower(c.Title), query) {
			out = append(out, c)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) TitlesContaining(_ context.Context, query string, limit int) ([]string, error) {
	f.record("TitlesContaining")
	if f.failTitles {
		return nil, errStoreDown
	}

	var out []string
	for _, c := range f.eligible() {
		if strings.Contains(strings.ToLower(c.Title), query) {
			out = append(out, c.Title)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) CountEligible(_ context.Context) (int64, error) {
	return int64(len(f.eligible())), nil
}

func (f *fakeCatalog) SearchByName(_ context.Context, query string, limit int) ([]domain.Person, error) {
	var out []domain.Person
	for _, p := range f.people {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// fakeClockCache is a minimal domain.Cache with a controllable clock.
type fakeClockCache struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]fakeEntry
}

type fakeEntry struct {
	value     []byte
	expiresAt time.Time
}

func newFakeCache() *fakeClockCache {
	return &fakeClockCache{
		now:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		entries: make(map[string]fakeEntry),
	}
}

func (f *fakeClockCache) advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *fakeClockCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[key]
	if !ok || f.now.After(e.expiresAt) {
		return nil, nil
	}
	return e.value, nil
}

func (f *fakeClockCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = fakeEntry{value: value, expiresAt: f.now.Add(ttl)}
	return nil
}

func (f *fakeClockCache) Clear(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.entries)
	f.entries = make(map[string]fakeEntry)
	return n, nil
}

func (f *fakeClockCache) Len(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries), nil
}

// movie builds an eligible catalog record for tests.
func movie(id, title string, opts ...func(*domain.Content)) *domain.Content {
	c := &domain.Content{
		ID:         id,
		Title:      title,
		Type:       domain.ContentTypeMovie,
		Status:     domain.StatusPublished,
		Visibility: domain.VisibilityPublic,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func withDescription(desc string) func(*domain.Content) {
	return func(c *domain.Content) { c.Description = desc }
}

func withViews(n int64) func(*domain.Content) {
	return func(c *domain.Content) { c.ViewCount = n }
}

func withGenres(genres ...string) func(*domain.Content) {
	return func(c *domain.Content) { c.Genres = genres }
}

func withType(t domain.ContentType) func(*domain.Content) {
	return func(c *domain.Content) { c.Type = t }
}

func withYear(year int) func(*domain.Content) {
	return func(c *domain.Content) {
		c.ReleaseDate = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	}
}

func unpublished() func(*domain.Content) {
	return func(c *domain.Content) { c.Status = domain.StatusDraft }
}
