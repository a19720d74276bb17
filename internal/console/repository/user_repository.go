package repository

import (
	"context"
	"errors"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"

	"gorm.io/gorm"
)

// UserRepository reads the profile rollup maintained by the trading
// engine. The console never writes this table.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

// FindByID retrieves a user profile by its ID. Returns
// apperrors.ErrNotFound when the profile row does not exist yet.
func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
