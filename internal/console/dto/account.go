package dto

import "time"

// AddAccountRequest is the payload for linking a new MT5 account.
// The password is obfuscated before it is written; it never appears in
// any response.
type AddAccountRequest struct {
	AccountName   string `json:"accountName" validate:"required"`
	Broker        string `json:"broker" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	Server        string `json:"server" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// AccountResponse is the API view of a linked MT5 account.
type AccountResponse struct {
	ID            string    `json:"id"`
	AccountName   string    `json:"account_name"`
	Broker        string    `json:"broker"`
	AccountNumber string    `json:"account_number"`
	Server        string    `json:"server"`
	Balance       float64   `json:"balance"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
