// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"media-search-service/internal/app/service"
	"media-search-service/internal/transport/httpserver/dto"
	"media-search-service/internal/validator"
)

// SearchHandler handles search-related HTTP requests.
type SearchHandler struct {
	service   *service.SearchService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(svc *service.SearchService, v *validator.Validator, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	// An empty query gets the popular-search list so clients can render
	// something useful instead of a bare error.
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:       "query parameter 'q' is required",
			Code:        "MISSING_QUERY",
			Suggestions: h.service.FallbackSuggestions(),
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	params := req.ToSearchParams()
	payload, cached, err := h.service.Search(c.Context(), params)
	if err != nil {
		h.logger.Error("search failed", zap.String("query", req.Query), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "search failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	if cached {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}

	return c.JSON(dto.FromSearchPayload(payload, params.Page, params.Limit))
}

// Quick handles GET /api/v1/search/quick
func (h *SearchHandler) Quick(c *fiber.Ctx) error {
	var req dto.QuickSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:       "query parameter 'q' is required",
			Code:        "MISSING_QUERY",
			Suggestions: h.service.FallbackSuggestions(),
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	result, cached, err := h.service.QuickSearch(c.Context(), req.Query, req.Limit)
	if err != nil {
		h.logger.Error("quick search failed", zap.String("query", req.Query), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "quick search failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	if cached {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}

	return c.JSON(dto.FromQuickResult(result))
}

// Analytics handles GET /api/v1/search/analytics
func (h *SearchHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.service.Analytics(c.Context())
	if err != nil {
		h.logger.Error("analytics snapshot failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to gather analytics",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.AnalyticsResponse{Success: true, Data: analytics})
}
