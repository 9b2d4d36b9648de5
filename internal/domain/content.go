// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// ContentType represents the type of catalog content.
type ContentType string

const (
	ContentTypeMovie       ContentType = "movie"
	ContentTypeSeries      ContentType = "series"
	ContentTypeDocumentary ContentType = "documentary"
	ContentTypeMusic       ContentType = "music"
)

// Publication status values for catalog content.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

// Visibility values for catalog content.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Content represents a single catalog record as consumed by search.
// The catalog itself is owned by the platform's CRUD services; search only
// ever reads published, publicly visible rows.
type Content struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description,omitempty"`
	Type             ContentType `json:"type"`

	// Popularity and editorial signals used by relevance scoring
	ViewCount     int64   `json:"view_count"`
	AverageRating float64 `json:"average_rating"`
	Featured      bool    `json:"featured"`
	Trending      bool    `json:"trending"`

	// Eligibility
	Status     string `json:"status"`
	Visibility string `json:"visibility"`

	Genres     []string `json:"genres,omitempty"`
	Categories []string `json:"categories,omitempty"`

	// ImageURL is the resolved primary thumbnail/poster URL. It is built
	// from the configured CDN host at read time, never stored.
	ImageURL string `json:"image_url,omitempty"`

	ReleaseDate time.Time `json:"release_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsEligible reports whether the record may appear in search results.
func (c *Content) IsEligible() bool {
	return c.Status == StatusPublished && c.Visibility == VisibilityPublic
}

// ReleaseYear returns the release year, or 0 when the date is unset.
func (c *Content) ReleaseYear() int {
	if c.ReleaseDate.IsZero() {
		return 0
	}
	return c.ReleaseDate.Year()
}

// TitleEntry is a projection of the eligible catalog used by the fuzzy tier.
// Loading only id/title/type keeps the corpus scan cheap.
type TitleEntry struct {
	ID    string
	Title string
	Type  ContentType
}

// Person represents a cast/crew member matched by the quick-search name
// lookup, together with the eligible content they are known for.
type Person struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	KnownFor string `json:"known_for,omitempty"`
}
