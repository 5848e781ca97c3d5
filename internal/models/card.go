package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card is a credit card with its billing cycle.
//
// ClosingDay and DueDay drive the due-date scheduling of installment
// purchases: a purchase made after the closing day belongs to the next
// invoice.
type Card struct {
	DefaultModel
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"uniqueIndex:card_name_user_id"`
	Name   string    `gorm:"uniqueIndex:card_name_user_id"`

	Limit      decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	ClosingDay int
	DueDay     int
}

// BeforeSave validates the billing cycle and trims whitespace.
func (c *Card) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.ClosingDay < 1 || c.ClosingDay > 31 || c.DueDay < 1 || c.DueDay > 31 {
		return ErrDayOutOfRange
	}

	return nil
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	// Verify the referenced user exists
	return tx.First(&User{}, c.UserID).Error
}
