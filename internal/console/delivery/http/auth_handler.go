package http

import (
	"net/http"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/identity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuthHandler forwards session termination to the identity provider.
// Sign-up and sign-in are handled by the provider directly.
type AuthHandler struct {
	identityClient identity.Client
	logger         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identityClient identity.Client, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{identityClient: identityClient, logger: logger}
}

// RegisterRoutes registers the auth routes to the Echo group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/signout", h.SignOut)
}

// SignOut terminates the current session at the identity provider.
func (h *AuthHandler) SignOut(c echo.Context) error {
	token := bearerToken(c)

	if err := h.identityClient.SignOut(c.Request().Context(), token); err != nil {
		h.logger.Error("Sign out failed", logger.ErrorField(err))
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
