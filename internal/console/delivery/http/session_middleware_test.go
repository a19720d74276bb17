package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/identity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubIdentityClient resolves a single known token.
type stubIdentityClient struct {
	ident *identity.Identity
	err   error
}

func (s *stubIdentityClient) CurrentUser(ctx context.Context, token string) (*identity.Identity, error) {
	return s.ident, s.err
}

func (s *stubIdentityClient) SignOut(ctx context.Context, token string) error {
	return nil
}

func runSessionMiddleware(t *testing.T, client identity.Client, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := SessionMiddleware(client, logger.NewNop())(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, reached
}

func TestSessionMiddlewareRejectsMissingToken(t *testing.T) {
	client := &stubIdentityClient{ident: &identity.Identity{ID: "user-1"}}

	rec, reached := runSessionMiddleware(t, client, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestSessionMiddlewareRejectsExpiredSession(t *testing.T) {
	client := &stubIdentityClient{err: apperrors.ErrUnauthenticated}

	rec, reached := runSessionMiddleware(t, client, "Bearer stale")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestSessionMiddlewareDegradesWhenProviderDown(t *testing.T) {
	client := &stubIdentityClient{err: apperrors.NewTransportError("resolve session", errors.New("connection refused"))}

	rec, reached := runSessionMiddleware(t, client, "Bearer any")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, reached)
}

func TestSessionMiddlewarePutsIdentityOnContext(t *testing.T) {
	client := &stubIdentityClient{ident: &identity.Identity{ID: "user-1"}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := SessionMiddleware(client, logger.NewNop())(func(c echo.Context) error {
		ident := CurrentIdentity(c)
		require.NotNil(t, ident)
		assert.Equal(t, "user-1", ident.ID)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
