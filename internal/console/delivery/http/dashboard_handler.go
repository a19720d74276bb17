package http

import (
	"net/http"
	"strconv"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/service"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles HTTP requests for the dashboard views.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes registers the dashboard routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetSummary)
	g.GET("/trades", h.GetRecentTrades)
}

// GetSummary returns the dashboard summary. Partial data is returned
// when an individual read fails, never an error page.
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	ident := CurrentIdentity(c)

	summary, err := h.dashboardService.Summary(c.Request().Context(), ident.ID)
	if err != nil {
		h.logger.Error("Failed to build dashboard summary", logger.ErrorField(err), logger.Field("user_id", ident.ID))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetRecentTrades returns the session user's trade history, newest
// first. The limit query parameter defaults to 10.
func (h *DashboardHandler) GetRecentTrades(c echo.Context) error {
	ident := CurrentIdentity(c)

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "is not a number", Field: "limit"})
		}
		limit = parsed
	}

	trades, err := h.dashboardService.RecentTrades(c.Request().Context(), ident.ID, limit)
	if err != nil {
		h.logger.Error("Failed to list trades", logger.ErrorField(err), logger.Field("user_id", ident.ID))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, trades)
}
