package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Trade is an immutable history record produced by the trading engine.
// The console only reads and aggregates it.
type Trade struct {
	ID         string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string         `gorm:"type:uuid;not null;index:idx_trades_user_opened" json:"user_id"`
	Symbol     string         `gorm:"not null" json:"symbol"`
	TradeType  string         `gorm:"not null" json:"trade_type"` // buy/sell
	OpenedAt   time.Time      `gorm:"not null;index:idx_trades_user_opened" json:"opened_at"`
	Pnl        float64        `gorm:"not null;default:0" json:"pnl"`
	PnlPercent float64        `gorm:"not null;default:0" json:"pnl_percent"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"` // engine diagnostics, passed through
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}
