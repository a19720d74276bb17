package entity

import "time"

// User mirrors the profile row maintained by the identity provider and
// the trading engine. The console reads the rollup totals; it never
// creates the identity itself.
type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	FullName    string    `gorm:"not null;default:''" json:"full_name"`
	TotalProfit float64   `gorm:"not null;default:0" json:"total_profit"`
	TotalTrades int       `gorm:"not null;default:0" json:"total_trades"`
	WinRate     float64   `gorm:"not null;default:0" json:"win_rate"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
