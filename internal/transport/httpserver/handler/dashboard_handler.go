package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"media-search-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	searchService *service.SearchService
	logger        *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.SearchService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		searchService: svc,
		logger:        logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	analytics, err := h.searchService.Analytics(c.Context())
	if err != nil {
		h.logger.Warn("dashboard analytics unavailable", zap.Error(err))
		analytics = &service.Analytics{}
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":           "Media Search Dashboard",
		"CatalogSize":     analytics.CatalogSize,
		"CacheEntries":    analytics.CacheEntries,
		"CacheHits":       analytics.CacheHits,
		"CacheMisses":     analytics.CacheMisses,
		"PopularSearches": analytics.PopularSearches,
	}, "layouts/base")
}
