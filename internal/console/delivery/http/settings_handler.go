package http

import (
	"net/http"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/service"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SettingsHandler handles HTTP requests for the bot configuration.
type SettingsHandler struct {
	settingsService service.SettingsService
	logger          *logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, logger: logger}
}

// RegisterRoutes registers the settings routes to the Echo group.
func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetSettings)
	g.PUT("", h.SaveSettings)
}

// GetSettings returns the session user's bot configuration in display
// units, falling back to the documented defaults before the first save.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	ident := CurrentIdentity(c)

	settings, err := h.settingsService.Get(c.Request().Context(), ident.ID)
	if err != nil {
		h.logger.Error("Failed to load settings", logger.ErrorField(err), logger.Field("user_id", ident.ID))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveSettings validates and upserts the bot configuration.
func (h *SettingsHandler) SaveSettings(c echo.Context) error {
	ident := CurrentIdentity(c)

	var req dto.SaveBotSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	if err := h.settingsService.Save(c.Request().Context(), ident.ID, &req); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
