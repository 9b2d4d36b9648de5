package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"media-search-service/internal/app/service"
	"media-search-service/internal/domain"
	"media-search-service/internal/transport/httpserver/dto"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	searchService *service.SearchService
	trends        domain.TrendsProvider
	popular       *service.PopularList
	logger        *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	searchSvc *service.SearchService,
	trends domain.TrendsProvider,
	popular *service.PopularList,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		searchService: searchSvc,
		trends:        trends,
		popular:       popular,
		logger:        logger,
	}
}

// ClearCache handles POST /api/v1/admin/cache/clear
func (h *AdminHandler) ClearCache(c *fiber.Ctx) error {
	h.logger.Info("manual cache clear triggered")

	removed, err := h.searchService.ClearCache(c.Context())
	if err != nil {
		h.logger.Error("cache clear failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to clear cache",
			Code:  "CACHE_CLEAR_FAILED",
		})
	}

	return c.JSON(dto.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("cache cleared, %d entries removed", removed),
	})
}

// RefreshPopular handles POST /api/v1/admin/popular/refresh
func (h *AdminHandler) RefreshPopular(c *fiber.Ctx) error {
	h.logger.Info("manual popular refresh triggered")

	terms, err := h.trends.FetchPopular(c.Context())
	if err != nil {
		h.logger.Error("popular refresh failed",
			zap.String("provider", h.trends.Name()),
			zap.Error(err),
		)

		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: "trends provider unavailable",
			Code:  "TRENDS_UNAVAILABLE",
		})
	}

	h.popular.Replace(terms)

	return c.JSON(dto.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("popular searches refreshed, %d terms loaded", len(terms)),
	})
}
