// Package installment implements the date and amount arithmetic for
// recurring bills and card installment purchases.
//
// All functions are pure: they take values and return fresh values, no
// database or clock access. Dates are plain calendar dates, the time of
// day is always midnight in the location of the input date.
package installment

import (
	"errors"
	"time"

	"github.com/centavo-zero/backend/internal/money"
	"github.com/shopspring/decimal"
)

var (
	ErrTooFewInstallments = errors.New("an installment purchase needs at least 2 installments")
	ErrAmountNotPositive  = errors.New("the total amount must be positive")
)

// SplitEqually divides a total amount into count parts of integer cents.
//
// The remainder of the division is distributed one cent at a time to the
// first parts, so the parts always sum to the exact total. Every part is
// negated since installments are expenses.
func SplitEqually(total decimal.Decimal, count int) ([]int64, error) {
	if count < 2 {
		return nil, ErrTooFewInstallments
	}

	totalCents := money.ToCents(total.Abs())
	if totalCents == 0 {
		return nil, ErrAmountNotPositive
	}

	base := totalCents / int64(count)
	remainder := totalCents % int64(count)

	amounts := make([]int64, count)
	for i := range amounts {
		extra := int64(0)
		if int64(i) < remainder {
			extra = 1
		}
		amounts[i] = -(base + extra)
	}

	return amounts, nil
}

// daysIn returns the number of days of the month.
//
// Day 0 of the following month normalizes to the last day of this one.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// clampDay limits a target day to the last day of the month, so that
// requesting day 31 in February yields the 28th or 29th.
func clampDay(day, year int, month time.Month, loc *time.Location) int {
	if last := daysIn(year, month, loc); day > last {
		return last
	}
	return day
}

// NextOccurrence returns the next date with the given target day of the
// month, seen from the given date.
//
// If the clamped target day has not passed yet (the current day counts as
// not passed), the occurrence is in the current month, otherwise in the
// following one. The target day is clamped to each month's length.
func NextOccurrence(from time.Time, targetDay int) time.Time {
	year, month, day := from.Date()
	loc := from.Location()

	due := clampDay(targetDay, year, month, loc)
	if day <= due {
		return time.Date(year, month, due, 0, 0, 0, 0, loc)
	}

	next := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	year, month, _ = next.Date()
	return time.Date(year, month, clampDay(targetDay, year, month, loc), 0, 0, 0, 0, loc)
}

// FirstDueDateFromClosing returns the due date of the invoice a card
// purchase belongs to.
//
// A purchase on or before the closing day belongs to the cycle closing
// this month and is due on the due day of the same month; a later purchase
// belongs to the next cycle and is due in the following month.
func FirstDueDateFromClosing(purchase time.Time, closingDay, dueDay int) time.Time {
	year, month, day := purchase.Date()
	loc := purchase.Location()

	if day > closingDay {
		next := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
		year, month, _ = next.Date()
	}

	return time.Date(year, month, clampDay(dueDay, year, month, loc), 0, 0, 0, 0, loc)
}

// DueDateForInstallment returns the due date of the installment with the
// given zero-based index.
//
// The first installment is due on the next invoice when closingDay is a
// valid day (1..31), otherwise on the next occurrence of dueDay. Later
// installments advance the month of the first due date by the index and
// clamp the due day to the target month.
func DueDateForInstallment(start time.Time, index, dueDay, closingDay int) time.Time {
	var first time.Time
	if closingDay >= 1 && closingDay <= 31 {
		first = FirstDueDateFromClosing(start, closingDay, dueDay)
	} else {
		first = NextOccurrence(start, dueDay)
	}

	if index == 0 {
		return first
	}

	year, month, _ := first.Date()
	loc := first.Location()
	target := time.Date(year, time.Month(int(month)+index), 1, 0, 0, 0, 0, loc)
	year, month, _ = target.Date()
	return time.Date(year, month, clampDay(dueDay, year, month, loc), 0, 0, 0, 0, loc)
}

// Item is one installment of a purchase: its position in the plan, the
// amount in cents (negative, it is an expense) and the due date.
type Item struct {
	Number  int // 1-based
	Total   int
	Cents   int64
	DueDate time.Time
}

// BuildInput is the description of an installment purchase.
type BuildInput struct {
	TotalAmount  decimal.Decimal
	Installments int
	DueDay       int
	StartDate    time.Time
	ClosingDay   int // 0 when the purchase is not tied to a card billing cycle
}

// BuildItems splits the total amount and schedules the due dates, yielding
// one Item per installment, numbered 1..Installments.
func BuildItems(input BuildInput) ([]Item, error) {
	amounts, err := SplitEqually(input.TotalAmount, input.Installments)
	if err != nil {
		return nil, err
	}

	items := make([]Item, input.Installments)
	for i := range items {
		items[i] = Item{
			Number:  i + 1,
			Total:   input.Installments,
			Cents:   amounts[i],
			DueDate: DueDateForInstallment(input.StartDate, i, input.DueDay, input.ClosingDay),
		}
	}

	return items, nil
}
