package service

import (
	"context"
	"strings"
	"sync"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/dto"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/repository"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/credentials"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"

	"github.com/google/uuid"
)

// AccountService manages the lifecycle of linked MT5 accounts.
type AccountService interface {
	List(ctx context.Context, userID string) ([]dto.AccountResponse, error)
	Add(ctx context.Context, userID string, req *dto.AddAccountRequest) (*dto.AccountResponse, error)
	Delete(ctx context.Context, userID, accountID string) error
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo repository.AccountRepository, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		logger:      logger,
		mutating:    make(map[string]struct{}),
	}
}

type accountService struct {
	accountRepo repository.AccountRepository
	logger      *logger.Logger

	// mutating tracks an in-flight add or delete per user so a
	// double-submitted form cannot pipeline two writes.
	mu       sync.Mutex
	mutating map[string]struct{}
}

func (s *accountService) beginMutation(op, userID string) bool {
	key := op + ":" + userID
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, inFlight := s.mutating[key]; inFlight {
		return false
	}
	s.mutating[key] = struct{}{}
	return true
}

func (s *accountService) endMutation(op, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mutating, op+":"+userID)
}

// List retrieves all accounts linked to the user, in insertion order.
func (s *accountService) List(ctx context.Context, userID string) ([]dto.AccountResponse, error) {
	accounts, err := s.accountRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewTransportError("list accounts", err)
	}

	responses := make([]dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, mapToAccountResponse(&account))
	}
	return responses, nil
}

// Add validates the request, obfuscates the password and links the
// account. The new row is visible to subsequent List calls.
func (s *accountService) Add(ctx context.Context, userID string, req *dto.AddAccountRequest) (*dto.AccountResponse, error) {
	if !s.beginMutation("add", userID) {
		return nil, apperrors.ErrMutationInFlight
	}
	defer s.endMutation("add", userID)

	if err := validateAddAccount(req); err != nil {
		return nil, err
	}

	account := &entity.MT5Account{
		ID:                uuid.NewString(),
		UserID:            userID,
		AccountName:       strings.TrimSpace(req.AccountName),
		Broker:            strings.TrimSpace(req.Broker),
		AccountNumber:     strings.TrimSpace(req.AccountNumber),
		Server:            strings.TrimSpace(req.Server),
		EncryptedPassword: credentials.Encode(req.Password),
		IsActive:          true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		s.logger.Error("Failed to add account", logger.ErrorField(err), logger.Field("user_id", userID))
		return nil, apperrors.NewTransportError("add account", err)
	}

	s.logger.Info("Account linked", logger.Field("user_id", userID), logger.Field("account_id", account.ID))
	resp := mapToAccountResponse(account)
	return &resp, nil
}

// Delete removes an account. Deleting an id that no longer exists is a
// no-op success: the user confirmed a destructive action and the end
// state is the same either way.
func (s *accountService) Delete(ctx context.Context, userID, accountID string) error {
	if !s.beginMutation("delete", userID) {
		return apperrors.ErrMutationInFlight
	}
	defer s.endMutation("delete", userID)

	rows, err := s.accountRepo.DeleteByID(ctx, userID, accountID)
	if err != nil {
		s.logger.Error("Failed to delete account", logger.ErrorField(err), logger.Field("account_id", accountID))
		return apperrors.NewTransportError("delete account", err)
	}
	if rows == 0 {
		s.logger.Info("Account already absent on delete", logger.Field("account_id", accountID), logger.Field("user_id", userID))
		return nil
	}
	s.logger.Info("Account deleted", logger.Field("account_id", accountID), logger.Field("user_id", userID))
	return nil
}

func validateAddAccount(req *dto.AddAccountRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"accountName", req.AccountName},
		{"broker", req.Broker},
		{"accountNumber", req.AccountNumber},
		{"server", req.Server},
		{"password", req.Password},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.NewValidationError(f.name, "is required")
		}
	}
	return nil
}

func mapToAccountResponse(account *entity.MT5Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            account.ID,
		AccountName:   account.AccountName,
		Broker:        account.Broker,
		AccountNumber: account.AccountNumber,
		Server:        account.Server,
		Balance:       account.Balance,
		IsActive:      account.IsActive,
		CreatedAt:     account.CreatedAt,
	}
}
