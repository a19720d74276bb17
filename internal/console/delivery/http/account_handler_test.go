package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/identity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccountService returns canned results for handler tests.
type stubAccountService struct {
	listResult []dto.AccountResponse
	listErr    error
	addResult  *dto.AccountResponse
	addErr     error
	deleteErr  error
}

func (s *stubAccountService) List(ctx context.Context, userID string) ([]dto.AccountResponse, error) {
	return s.listResult, s.listErr
}

func (s *stubAccountService) Add(ctx context.Context, userID string, req *dto.AddAccountRequest) (*dto.AccountResponse, error) {
	return s.addResult, s.addErr
}

func (s *stubAccountService) Delete(ctx context.Context, userID, accountID string) error {
	return s.deleteErr
}

func newAccountContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewRequestValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1/accounts", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionContextKey, &identity.Identity{ID: "user-1"})
	return c, rec
}

func TestAddAccountReportsEmptyRequiredFieldByName(t *testing.T) {
	svc := &stubAccountService{}
	h := NewAccountHandler(svc, logger.NewNop())

	body := `{"accountName":"","broker":"Pepperstone","accountNumber":"12345678","server":"Pepperstone-Live","password":"hunter2"}`
	c, rec := newAccountContext(t, http.MethodPost, body)

	require.NoError(t, h.AddAccount(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "accountName", resp.Field)
	assert.Contains(t, resp.Error, "required")
}

func TestAddAccountReportsAbsentRequiredFieldByName(t *testing.T) {
	svc := &stubAccountService{}
	h := NewAccountHandler(svc, logger.NewNop())

	body := `{"accountName":"Main","broker":"Pepperstone","accountNumber":"12345678","server":"Pepperstone-Live"}`
	c, rec := newAccountContext(t, http.MethodPost, body)

	require.NoError(t, h.AddAccount(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "password", resp.Field)
}

func TestAddAccountMapsMutationInFlightToConflict(t *testing.T) {
	svc := &stubAccountService{addErr: apperrors.ErrMutationInFlight}
	h := NewAccountHandler(svc, logger.NewNop())

	body := `{"accountName":"Main","broker":"Pepperstone","accountNumber":"12345678","server":"Pepperstone-Live","password":"hunter2"}`
	c, rec := newAccountContext(t, http.MethodPost, body)

	require.NoError(t, h.AddAccount(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAddAccountReturnsCreatedAccount(t *testing.T) {
	svc := &stubAccountService{
		addResult: &dto.AccountResponse{ID: "acc-1", AccountName: "Main", IsActive: true},
	}
	h := NewAccountHandler(svc, logger.NewNop())

	body := `{"accountName":"Main","broker":"Pepperstone","accountNumber":"12345678","server":"Pepperstone-Live","password":"hunter2"}`
	c, rec := newAccountContext(t, http.MethodPost, body)

	require.NoError(t, h.AddAccount(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "acc-1", resp.ID)
	assert.True(t, resp.IsActive)
}
