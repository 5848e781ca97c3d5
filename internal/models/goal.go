package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryGoal is a monthly spending limit for one category.
type CategoryGoal struct {
	DefaultModel
	User     User      `json:"-"`
	UserID   uuid.UUID `gorm:"uniqueIndex:goal_category_user_id"`
	Category string    `gorm:"uniqueIndex:goal_category_user_id"`

	MonthlyLimit decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
}

func (g *CategoryGoal) BeforeSave(_ *gorm.DB) error {
	g.Category = strings.TrimSpace(g.Category)

	return nil
}

func (g *CategoryGoal) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	// Verify the referenced user exists
	return tx.First(&User{}, g.UserID).Error
}

func (g *CategoryGoal) AfterSave(_ *gorm.DB) error {
	if !g.MonthlyLimit.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
