package repository

import (
	"context"
	"time"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"

	"gorm.io/gorm"
)

// AccountRepository defines the data operations for linked MT5 accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.MT5Account) error
	FindByUserID(ctx context.Context, userID string) ([]entity.MT5Account, error)
	DeleteByID(ctx context.Context, userID, accountID string) (int64, error)
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewAccountRepository creates a new GORM-based account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

type accountRepository struct {
	db *gorm.DB
}

// Create inserts a new account row.
func (r *accountRepository) Create(ctx context.Context, account *entity.MT5Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByUserID retrieves all accounts linked to a user in insertion order.
func (r *accountRepository) FindByUserID(ctx context.Context, userID string) ([]entity.MT5Account, error) {
	var accounts []entity.MT5Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// DeleteByID soft-deletes an account. The user_id filter keeps one user
// from deleting another user's account. Returns the number of rows
// affected; zero rows is not an error.
func (r *accountRepository) DeleteByID(ctx context.Context, userID, accountID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		Delete(&entity.MT5Account{})
	return res.RowsAffected, res.Error
}

// PurgeDeletedBefore hard-deletes rows that were soft-deleted before the
// cutoff. Used by the janitor to keep the table bounded.
func (r *accountRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&entity.MT5Account{})
	return res.RowsAffected, res.Error
}
