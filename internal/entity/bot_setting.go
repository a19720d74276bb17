package entity

import "time"

// BotSetting is the single strategy configuration row per user.
// Columns with the _pct or _threshold suffix store fractions in [0,1];
// the API layer converts to and from percentages. The conversion lives
// in the settings service only.
type BotSetting struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	UserID                 string    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Symbol                 string    `gorm:"not null" json:"symbol"`
	Timeframe              string    `gorm:"not null" json:"timeframe"`
	MaxPositionRiskPct     float64   `gorm:"not null" json:"max_position_risk_pct"`
	MaxDailyLossPct        float64   `gorm:"not null" json:"max_daily_loss_pct"`
	MaxDrawdownPct         float64   `gorm:"not null" json:"max_drawdown_pct"`
	MaxTradesPerDay        int       `gorm:"not null" json:"max_trades_per_day"`
	EmaShort               int       `gorm:"not null" json:"ema_short"`
	EmaLong                int       `gorm:"not null" json:"ema_long"`
	RsiPeriod              int       `gorm:"not null" json:"rsi_period"`
	UseMlPrediction        bool      `gorm:"not null;default:true" json:"use_ml_prediction"`
	MinConfidenceThreshold float64   `gorm:"not null" json:"min_confidence_threshold"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BotSetting) TableName() string {
	return "bot_settings"
}
