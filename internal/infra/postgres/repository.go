package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"media-search-service/internal/domain"
)

// Repository implements domain.CatalogRepository and domain.PeopleRepository
// using PostgreSQL. Retrieval relies on ILIKE pattern matching; relevance
// scoring happens in-process, so queries only narrow the candidate set.
type Repository struct {
	db           *gorm.DB
	imageBaseURL string
}

// NewRepository creates a new PostgreSQL repository. imageBaseURL is the CDN
// host used to resolve primary image URLs (explicit config, not ambient env).
func NewRepository(db *gorm.DB, imageBaseURL string) *Repository {
	return &Repository{db: db, imageBaseURL: imageBaseURL}
}

// eligible scopes a query to published, publicly visible content.
func (r *Repository) eligible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ContentModel{}).
		Where("status = ? AND visibility = ?", domain.StatusPublished, domain.VisibilityPublic)
}

// SearchTokens finds eligible records matching any token against title,
// description or short description. Candidates are pre-ordered by view count
// so the cap keeps the most popular rows when the match set is large.
func (r *Repository) SearchTokens(ctx context.Context, tokens []string, filters domain.Filters, limit int) ([]*domain.Content, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*3)
	for _, tok := range tokens {
		pattern := likePattern(tok)
		conds = append(conds, "(title ILIKE ? OR description ILIKE ? OR short_description ILIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}

	query := r.eligible(ctx).Where(strings.Join(conds, " OR "), args...)
	query = applyFilters(query, filters)

	var models []ContentModel
	if err := query.Order("view_count DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("searching by tokens: %w", err)
	}

	return r.toDomainSlice(models), nil
}

// SearchPhrase finds eligible records containing the whole phrase in title
// or description.
func (r *Repository) SearchPhrase(ctx context.Context, phrase string, filters domain.Filters, limit int) ([]*domain.Content, error) {
	if phrase == "" {
		return nil, nil
	}

	pattern := likePattern(phrase)
	query := r.eligible(ctx).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	query = applyFilters(query, filters)

	var models []ContentModel
	if err := query.Order("view_count DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("searching by phrase: %w", err)
	}

	return r.toDomainSlice(models), nil
}

// TitleIndex loads the id/title/type projection of the eligible catalog.
func (r *Repository) TitleIndex(ctx context.Context) ([]domain.TitleEntry, error) {
	var rows []titleRow
	err := r.eligible(ctx).
		Select("id", "title", "type").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading title index: %w", err)
	}

	entries := make([]domain.TitleEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.TitleEntry{
			ID:    row.ID,
			Title: row.Title,
			Type:  domain.ContentType(row.Type),
		}
	}

	return entries, nil
}

// GetByIDs fetches full records for the given ids, preserving input order.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Content, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []ContentModel
	err := r.eligible(ctx).Where("id IN ?", ids).Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("getting contents by ids: %w", err)
	}

	byID := make(map[string]*domain.Content, len(models))
	for i := range models {
		byID[models[i].ID] = models[i].ToDomain(r.imageBaseURL)
	}

	// The IN clause loses rank order; restore it from the input slice.
	ordered := make([]*domain.Content, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}

	return ordered, nil
}

// MatchTitles finds eligible records whose title contains the query, most
// viewed first, for the quick/autocomplete pipeline.
func (r *Repository) MatchTitles(ctx context.Context, query string, limit int) ([]*domain.Content, error) {
	if query == "" {
		return nil, nil
	}

	var models []ContentModel
	err := r.eligible(ctx).
		Where("title ILIKE ?", likePattern(query)).
		Order("view_count DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("matching titles: %w", err)
	}

	return r.toDomainSlice(models), nil
}

// TitlesContaining returns up to limit distinct eligible titles containing
// the query, for suggestion generation.
func (r *Repository) TitlesContaining(ctx context.Context, query string, limit int) ([]string, error) {
	if query == "" {
		return nil, nil
	}

	var titles []string
	err := r.eligible(ctx).
		Where("title ILIKE ?", likePattern(query)).
		Order("view_count DESC").
		Limit(limit).
		Distinct().
		Pluck("title", &titles).Error
	if err != nil {
		return nil, fmt.Errorf("listing titles containing %q: %w", query, err)
	}

	return titles, nil
}

// CountEligible returns the size of the searchable catalog.
func (r *Repository) CountEligible(ctx context.Context) (int64, error) {
	var count int64
	if err := r.eligible(ctx).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting eligible contents: %w", err)
	}

	return count, nil
}

// SearchByName finds cast/crew by full or display name, joined to one
// eligible record they are credited on.
func (r *Repository) SearchByName(ctx context.Context, query string, limit int) ([]domain.Person, error) {
	if query == "" {
		return nil, nil
	}

	pattern := likePattern(query)

	type personRow struct {
		ID          string
		FullName    string
		DisplayName string
		Role        string
		KnownFor    string
	}

	var rows []personRow
	err := r.db.WithContext(ctx).
		Table("people").
		Select("people.id", "people.full_name", "people.display_name",
			"cast_credits.role", "contents.title AS known_for").
		Joins("JOIN cast_credits ON cast_credits.person_id = people.id").
		Joins("JOIN contents ON contents.id = cast_credits.content_id").
		Where("contents.status = ? AND contents.visibility = ?",
			domain.StatusPublished, domain.VisibilityPublic).
		Where("people.full_name ILIKE ? OR people.display_name ILIKE ?", pattern, pattern).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("searching people by name: %w", err)
	}

	people := make([]domain.Person, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.ID]; dup {
			continue
		}
		seen[row.ID] = struct{}{}

		name := row.DisplayName
		if name == "" {
			name = row.FullName
		}
		people = append(people, domain.Person{
			ID:       row.ID,
			Name:     name,
			Role:     row.Role,
			KnownFor: row.KnownFor,
		})
	}

	return people, nil
}

// applyFilters narrows a content query by type, genre name and release year.
func applyFilters(query *gorm.DB, f domain.Filters) *gorm.DB {
	if f.Type != "" {
		query = query.Where("type = ?", string(f.Type))
	}
	if f.Genre != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM unnest(genres) AS g WHERE g ILIKE ?)",
			f.Genre,
		)
	}
	if f.Year != 0 {
		query = query.Where("EXTRACT(YEAR FROM release_date) = ?", f.Year)
	}

	return query
}

// likePattern wraps the input for a contains match, escaping LIKE
// metacharacters so user input can't widen the pattern.
func likePattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}

// toDomainSlice converts models to domain records with resolved image URLs.
func (r *Repository) toDomainSlice(models []ContentModel) []*domain.Content {
	contents := make([]*domain.Content, len(models))
	for i := range models {
		contents[i] = models[i].ToDomain(r.imageBaseURL)
	}

	return contents
}
