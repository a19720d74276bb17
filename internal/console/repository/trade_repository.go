package repository

import (
	"context"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/entity"

	"gorm.io/gorm"
)

// TradeRepository reads the trade history produced by the trading
// engine. Strictly read-only from the console's side.
type TradeRepository interface {
	FindRecentByUserID(ctx context.Context, userID string, limit int) ([]entity.Trade, error)
}

// NewTradeRepository creates a new GORM-based trade repository.
func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{db: db}
}

type tradeRepository struct {
	db *gorm.DB
}

// FindRecentByUserID retrieves the most recent trades for a user,
// ordered by open time descending.
func (r *tradeRepository) FindRecentByUserID(ctx context.Context, userID string, limit int) ([]entity.Trade, error) {
	var trades []entity.Trade
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("opened_at DESC").
		Limit(limit).
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}
