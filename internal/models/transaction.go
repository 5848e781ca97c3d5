package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies how a transaction came to be.
type TransactionType string

const (
	TypeFixed      TransactionType = "FIXED"      // recurring bill, materialized monthly
	TypeVariable   TransactionType = "VARIABLE"   // ad-hoc expense
	TypeCard       TransactionType = "CARD"       // card purchase, usually one per installment
	TypeIncome     TransactionType = "INCOME"
	TypeAdjustment TransactionType = "ADJUSTMENT" // balance reconciliation
)

// PaymentMethod is how a variable expense was paid.
type PaymentMethod string

const (
	PaymentDebit  PaymentMethod = "DEBIT"
	PaymentPix    PaymentMethod = "PIX"
	PaymentCash   PaymentMethod = "CASH"
	PaymentCredit PaymentMethod = "CREDIT"
)

// Transaction is a single financial entry. Negative amounts are expenses,
// positive amounts are income.
type Transaction struct {
	DefaultModel
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"index"`
	Card   *Card      `json:"-"`
	CardID *uuid.UUID `gorm:"index"`

	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	Type        TransactionType `gorm:"index"`
	Category    string

	// DueDate is a plain calendar date; the stored time of day is always
	// midnight. It is kept as entered, without timezone conversion, so
	// that an entry made late in the evening does not shift to yesterday.
	DueDate time.Time
	IsPaid  bool
	PaidAt  *time.Time

	PaymentMethod PaymentMethod

	// Recurring marks the transaction as a template for monthly
	// materialization on RecurringDay.
	Recurring    bool
	RecurringDay int

	// InstallmentNumber / InstallmentTotal are set for CARD purchases
	// split into installments, e.g. 2 of 10.
	InstallmentNumber int
	InstallmentTotal  int
}

// BeforeSave trims whitespace and validates the recurring day.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)

	if t.Recurring && (t.RecurringDay < 1 || t.RecurringDay > 31) {
		return ErrDayOutOfRange
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return t.checkIntegrity(tx)
}

// checkIntegrity verifies references to other resources
func (t *Transaction) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&User{}, t.UserID).Error
	if err != nil {
		return err
	}

	if t.CardID != nil {
		return tx.First(&Card{}, *t.CardID).Error
	}

	return nil
}

// MarkPaid sets the paid flag and timestamp.
func (t *Transaction) MarkPaid(now time.Time) {
	t.IsPaid = true
	t.PaidAt = &now
}
