package entity

import (
	"time"

	"gorm.io/gorm"
)

// MT5Account is a broker account linked to a user. EncryptedPassword
// holds the output of pkg/credentials.Encode, never the plaintext.
type MT5Account struct {
	ID                string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID            string         `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountName       string         `gorm:"not null" json:"account_name"`
	Broker            string         `gorm:"not null" json:"broker"`
	AccountNumber     string         `gorm:"not null" json:"account_number"`
	Server            string         `gorm:"not null" json:"server"`
	EncryptedPassword string         `gorm:"not null" json:"-"`
	Balance           float64        `gorm:"not null;default:0" json:"balance"`
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MT5Account) TableName() string {
	return "mt5_accounts"
}
