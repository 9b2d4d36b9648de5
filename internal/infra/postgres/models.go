package postgres

import (
	"strings"
	"time"

	"media-search-service/internal/domain"

	"github.com/lib/pq"
)

// ContentModel is the GORM model for the contents table.
type ContentModel struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title            string `gorm:"type:varchar(500);not null;index"`
	Description      string `gorm:"type:text"`
	ShortDescription string `gorm:"type:varchar(500)"`
	Type             string `gorm:"type:varchar(20);not null;index"`

	// Popularity and editorial signals
	ViewCount     int64   `gorm:"default:0"`
	AverageRating float64 `gorm:"type:decimal(3,1);default:0"`
	Featured      bool    `gorm:"default:false"`
	Trending      bool    `gorm:"default:false"`

	// Eligibility
	Status     string `gorm:"type:varchar(20);not null;index"`
	Visibility string `gorm:"type:varchar(20);not null;index"`

	Genres     pq.StringArray `gorm:"type:text[]"`
	Categories pq.StringArray `gorm:"type:text[]"`

	// PosterPath is the CDN-relative path of the primary image.
	PosterPath string `gorm:"type:varchar(500)"`

	ReleaseDate time.Time `gorm:"index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for ContentModel.
func (ContentModel) TableName() string {
	return "contents"
}

// ToDomain converts ContentModel to domain.Content. imageBaseURL is the
// configured CDN host used to resolve the primary image URL.
func (m *ContentModel) ToDomain(imageBaseURL string) *domain.Content {
	return &domain.Content{
		ID:               m.ID,
		Title:            m.Title,
		Description:      m.Description,
		ShortDescription: m.ShortDescription,
		Type:             domain.ContentType(m.Type),
		ViewCount:        m.ViewCount,
		AverageRating:    m.AverageRating,
		Featured:         m.Featured,
		Trending:         m.Trending,
		Status:           m.Status,
		Visibility:       m.Visibility,
		Genres:           m.Genres,
		Categories:       m.Categories,
		ImageURL:         resolveImageURL(imageBaseURL, m.PosterPath),
		ReleaseDate:      m.ReleaseDate,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// resolveImageURL joins the CDN base with the stored poster path.
// Absolute paths are returned unchanged; empty paths yield no URL.
func resolveImageURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

// titleRow is the projection loaded for the fuzzy tier's corpus scan.
type titleRow struct {
	ID    string
	Title string
	Type  string
}

// PersonModel is the GORM model for the people table (cast and crew).
type PersonModel struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName    string `gorm:"type:varchar(200);not null;index"`
	DisplayName string `gorm:"type:varchar(100)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for PersonModel.
func (PersonModel) TableName() string {
	return "people"
}

// CastCreditModel links a person to a catalog record with their role.
type CastCreditModel struct {
	ContentID string `gorm:"type:uuid;primaryKey"`
	PersonID  string `gorm:"type:uuid;primaryKey"`
	Role      string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for CastCreditModel.
func (CastCreditModel) TableName() string {
	return "cast_credits"
}
