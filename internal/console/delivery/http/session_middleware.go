package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/identity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/labstack/echo/v4"
)

const sessionContextKey = "console.session"

// SessionMiddleware resolves the Bearer token into an identity and puts
// it on the request context. Without a valid session no console call is
// made; the browser redirects to sign-in on 401.
func SessionMiddleware(identityClient identity.Client, appLogger *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
			}

			ident, err := identityClient.CurrentUser(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthenticated) {
					return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "session expired, please sign in again"})
				}
				appLogger.Error("Failed to resolve session", logger.ErrorField(err))
				return c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "authentication service unavailable, please retry"})
			}

			c.Set(sessionContextKey, ident)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity resolved by SessionMiddleware.
func CurrentIdentity(c echo.Context) *identity.Identity {
	ident, _ := c.Get(sessionContextKey).(*identity.Identity)
	return ident
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
