package repository

import (
	"context"
	"errors"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository defines the data operations for bot settings.
// There is at most one row per user, keyed by the user_id unique index.
type SettingsRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entity.BotSetting, error)
	Upsert(ctx context.Context, setting *entity.BotSetting) error
}

// NewSettingsRepository creates a new GORM-based settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

type settingsRepository struct {
	db *gorm.DB
}

// FindByUserID retrieves the settings row for a user. Returns
// apperrors.ErrNotFound when the user has never saved settings.
func (r *settingsRepository) FindByUserID(ctx context.Context, userID string) (*entity.BotSetting, error) {
	var setting entity.BotSetting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert inserts the row or fully overwrites the existing one for the
// same user. Atomic at the record granularity.
func (r *settingsRepository) Upsert(ctx context.Context, setting *entity.BotSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"symbol", "timeframe",
			"max_position_risk_pct", "max_daily_loss_pct", "max_drawdown_pct",
			"max_trades_per_day", "ema_short", "ema_long", "rsi_period",
			"use_ml_prediction", "min_confidence_threshold", "updated_at",
		}),
	}).Create(setting).Error
}
