package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is a person tracking their finances.
//
// Authentication is handled by the fronting layer; this backend only needs
// the identity and the Telegram link state.
type User struct {
	DefaultModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`

	// TelegramID is the chat ID of the linked Telegram account, empty
	// while unlinked. TelegramLinkCode is the 6-digit one-time code shown
	// in the web UI to link the account.
	TelegramID       string `gorm:"index"`
	TelegramLinkCode string `json:"-"`

	// Balance is the reconciled account balance, adjusted through
	// ADJUSTMENT transactions.
	Balance decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
}

// BeforeSave trims whitespace from all strings
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	u.TelegramID = strings.TrimSpace(u.TelegramID)

	return nil
}
