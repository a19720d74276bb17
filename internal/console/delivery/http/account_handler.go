package http

import (
	"net/http"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/service"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles HTTP requests for linked MT5 accounts.
type AccountHandler struct {
	accountService service.AccountService
	logger         *logger.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, logger: logger}
}

// RegisterRoutes registers the account routes to the Echo group.
func (h *AccountHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListAccounts)
	g.POST("", h.AddAccount)
	g.DELETE("/:id", h.DeleteAccount)
}

// ListAccounts returns the session user's linked accounts.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	ident := CurrentIdentity(c)

	accounts, err := h.accountService.List(c.Request().Context(), ident.ID)
	if err != nil {
		h.logger.Error("Failed to list accounts", logger.ErrorField(err), logger.Field("user_id", ident.ID))
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// AddAccount links a new MT5 account to the session user.
func (h *AccountHandler) AddAccount(c echo.Context) error {
	ident := CurrentIdentity(c)

	var req dto.AddAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	account, err := h.accountService.Add(c.Request().Context(), ident.ID, &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, account)
}

// DeleteAccount removes a linked account. The browser confirmed the
// destructive action before calling; deleting an absent id succeeds.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	ident := CurrentIdentity(c)
	accountID := c.Param("id")

	if err := h.accountService.Delete(c.Request().Context(), ident.ID, accountID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
