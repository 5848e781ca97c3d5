package models

import (
	"fmt"
	"time"

	"github.com/centavo-zero/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionsBetween returns all of a user's transactions with a due date
// in [from, to), newest first.
func TransactionsBetween(userID uuid.UUID, from, to time.Time) ([]Transaction, error) {
	var transactions []Transaction

	err := DB.
		Preload("Card").
		Where("user_id = ? AND due_date >= ? AND due_date < ?", userID, from, to).
		Order("due_date DESC, created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("getting transactions between %s and %s failed: %w", from, to, err)
	}

	return transactions, nil
}

// TransactionsForMonth returns all of a user's transactions due in the month.
func TransactionsForMonth(userID uuid.UUID, month types.Month) ([]Transaction, error) {
	return TransactionsBetween(userID, month.FirstDay(), month.NextMonth())
}

// MonthTotal returns the signed sum of all amounts due in the month.
func MonthTotal(userID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("transactions").
		Where("user_id = ? AND due_date >= ? AND due_date < ? AND deleted_at IS NULL", userID, month.FirstDay(), month.NextMonth()).
		Select("SUM(amount)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing transactions for %s failed: %w", month, err)
	}

	return sum.Decimal, nil
}

// CategorySpending is the absolute amount spent in one category.
type CategorySpending struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// SpendingByCategory returns the absolute expense total per category for
// the month, largest first. Adjustments are not spending and are skipped.
func SpendingByCategory(userID uuid.UUID, month types.Month) ([]CategorySpending, error) {
	spending := make([]CategorySpending, 0)

	err := DB.Table("transactions").
		Where("user_id = ? AND due_date >= ? AND due_date < ?", userID, month.FirstDay(), month.NextMonth()).
		Where("amount < 0 AND type != ? AND deleted_at IS NULL", TypeAdjustment).
		Select("category, SUM(-amount) AS total").
		Group("category").
		Order("total DESC").
		Scan(&spending).Error
	if err != nil {
		return nil, fmt.Errorf("grouping spending for %s failed: %w", month, err)
	}

	return spending, nil
}

// BillsDueBetween returns unpaid scheduled bills due in [from, to). That
// is fixed bills and card installments, not variable spending.
func BillsDueBetween(userID uuid.UUID, from, to time.Time) ([]Transaction, error) {
	var bills []Transaction

	err := DB.
		Preload("Card").
		Where("user_id = ? AND is_paid = false AND type IN ?", userID, []TransactionType{TypeFixed, TypeCard}).
		Where("due_date >= ? AND due_date < ?", from, to).
		Order("due_date ASC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("getting due bills failed: %w", err)
	}

	return bills, nil
}

// OverdueBills returns unpaid fixed and card bills that were due strictly
// before the start of today.
//
// This comparison is intentionally different from the scheduling one in
// the installment package: a bill due today is schedulable for this month
// but not yet overdue.
func OverdueBills(userID uuid.UUID, startOfToday time.Time) ([]Transaction, error) {
	var bills []Transaction

	err := DB.
		Preload("Card").
		Where("user_id = ? AND is_paid = false AND type IN ?", userID, []TransactionType{TypeFixed, TypeCard}).
		Where("due_date < ?", startOfToday).
		Order("due_date ASC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("getting overdue bills failed: %w", err)
	}

	return bills, nil
}

// CardInvoice is the open amount of one card for one month.
type CardInvoice struct {
	CardID      uuid.UUID       `json:"cardId"`
	CardName    string          `json:"cardName"`
	ClosingDay  int             `json:"closingDay"`
	DueDay      int             `json:"dueDay"`
	TotalUnpaid decimal.Decimal `json:"totalUnpaid"`
}

// OpenInvoices returns the unpaid invoice total of every card of the user
// for the month.
func OpenInvoices(userID uuid.UUID, month types.Month) ([]CardInvoice, error) {
	cards, err := CardsForUser(userID)
	if err != nil {
		return nil, err
	}

	invoices := make([]CardInvoice, 0, len(cards))
	for _, card := range cards {
		var sum decimal.NullDecimal

		err := DB.Table("transactions").
			Where("card_id = ? AND is_paid = false AND deleted_at IS NULL", card.ID).
			Where("due_date >= ? AND due_date < ?", month.FirstDay(), month.NextMonth()).
			Select("SUM(amount)").
			Row().
			Scan(&sum)
		if err != nil {
			return nil, fmt.Errorf("summing the invoice for card %s failed: %w", card.ID, err)
		}

		invoices = append(invoices, CardInvoice{
			CardID:      card.ID,
			CardName:    card.Name,
			ClosingDay:  card.ClosingDay,
			DueDay:      card.DueDay,
			TotalUnpaid: sum.Decimal,
		})
	}

	return invoices, nil
}

// CardsForUser returns the user's cards, oldest first, so that the first
// card is the default for installment purchases without a card hint.
func CardsForUser(userID uuid.UUID) ([]Card, error) {
	var cards []Card

	err := DB.Where(&Card{UserID: userID}).Order("created_at ASC").Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("getting cards failed: %w", err)
	}

	return cards, nil
}

// RecurringTemplates returns all recurring transactions, newest first.
// Multiple materializations of the same bill appear as multiple rows, the
// caller deduplicates by rule.
func RecurringTemplates() ([]Transaction, error) {
	var templates []Transaction

	err := DB.Where("recurring = true").Order("created_at DESC").Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("getting recurring templates failed: %w", err)
	}

	return templates, nil
}

// RecurringExistsInMonth reports whether the recurring rule identified by
// (user, description, category, amount, day) already has an entry due in
// the month.
func RecurringExistsInMonth(userID uuid.UUID, description, category string, amount decimal.Decimal, day int, month types.Month) (bool, error) {
	var count int64

	err := DB.Model(&Transaction{}).
		Where("user_id = ? AND description = ? AND category = ? AND recurring = true AND recurring_day = ?", userID, description, category, day).
		Where("amount = ?", amount).
		Where("due_date >= ? AND due_date < ?", month.FirstDay(), month.NextMonth()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking for an existing recurring entry failed: %w", err)
	}

	return count > 0, nil
}

// Alerts is what a user should look at today: bills due today, bills
// already late and card invoices that closed with an open amount.
type Alerts struct {
	DueToday      []Transaction `json:"dueToday"`
	Overdue       []Transaction `json:"overdue"`
	InvoiceClosed []CardInvoice `json:"invoiceClosed"`
}

// Empty reports whether there is nothing to alert about.
func (a Alerts) Empty() bool {
	return len(a.DueToday) == 0 && len(a.Overdue) == 0 && len(a.InvoiceClosed) == 0
}

// AlertsForUser collects the daily alerts as of now. An invoice counts as
// closed once today has reached the card's closing day and the invoice
// still has an open amount.
func AlertsForUser(userID uuid.UUID, now time.Time) (Alerts, error) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dueToday, err := BillsDueBetween(userID, startOfToday, startOfToday.AddDate(0, 0, 1))
	if err != nil {
		return Alerts{}, err
	}

	overdue, err := OverdueBills(userID, startOfToday)
	if err != nil {
		return Alerts{}, err
	}

	invoices, err := OpenInvoices(userID, types.MonthOf(now))
	if err != nil {
		return Alerts{}, err
	}

	closed := make([]CardInvoice, 0)
	for _, invoice := range invoices {
		if now.Day() >= invoice.ClosingDay && !invoice.TotalUnpaid.IsZero() {
			closed = append(closed, invoice)
		}
	}

	return Alerts{DueToday: dueToday, Overdue: overdue, InvoiceClosed: closed}, nil
}

// UsersWithTelegram returns all users with a linked Telegram account.
func UsersWithTelegram() ([]User, error) {
	var users []User

	err := DB.Where("telegram_id != ''").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("getting linked users failed: %w", err)
	}

	return users, nil
}
