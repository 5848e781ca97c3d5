package models

import (
	"sort"
	"time"

	"github.com/centavo-zero/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthSummary is the dashboard headline for one month.
type MonthSummary struct {
	Month   types.Month     `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"` // absolute
	Total   decimal.Decimal `json:"total"`
}

// SummaryForMonth computes income, absolute expenses and the resulting
// total for the month. Adjustments keep the total honest but are not
// expenses.
func SummaryForMonth(userID uuid.UUID, month types.Month) (MonthSummary, error) {
	transactions, err := TransactionsForMonth(userID, month)
	if err != nil {
		return MonthSummary{}, err
	}

	summary := MonthSummary{Month: month}
	for _, transaction := range transactions {
		summary.Total = summary.Total.Add(transaction.Amount)

		if transaction.Amount.IsPositive() {
			summary.Income = summary.Income.Add(transaction.Amount)
		} else if transaction.Amount.IsNegative() && transaction.Type != TypeAdjustment {
			summary.Expense = summary.Expense.Add(transaction.Amount.Neg())
		}
	}

	return summary, nil
}

var monthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// MonthBreakdown is one month's slice of the annual report.
type MonthBreakdown struct {
	Month    int             `json:"month"`
	Label    string          `json:"monthLabel"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Balance  decimal.Decimal `json:"balance"`
	Variable decimal.Decimal `json:"variable"`
	Fixed    decimal.Decimal `json:"fixed"`
	Card     decimal.Decimal `json:"card"`
}

// YearTotals is an annual income/expense/balance triple.
type YearTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// YearReport is the annual report: monthly breakdown, totals, totals of
// the previous year for comparison and spending per category.
type YearReport struct {
	MonthlyBreakdown   []MonthBreakdown   `json:"monthlyBreakdown"`
	YearTotals         YearTotals         `json:"yearTotals"`
	PreviousYearTotals YearTotals         `json:"previousYearTotals"`
	CategoryTotals     []CategorySpending `json:"categoryTotalsYear"`
}

// ReportForYear builds the annual report for the year.
func ReportForYear(userID uuid.UUID, year int) (YearReport, error) {
	current, err := transactionsForYear(userID, year)
	if err != nil {
		return YearReport{}, err
	}

	previous, err := transactionsForYear(userID, year-1)
	if err != nil {
		return YearReport{}, err
	}

	report := YearReport{
		MonthlyBreakdown: breakdownByMonth(current, year),
		CategoryTotals:   categoriesForYear(current),
	}

	for _, month := range report.MonthlyBreakdown {
		report.YearTotals.Income = report.YearTotals.Income.Add(month.Income)
		report.YearTotals.Expense = report.YearTotals.Expense.Add(month.Expense)
		report.YearTotals.Balance = report.YearTotals.Balance.Add(month.Balance)
	}

	for _, month := range breakdownByMonth(previous, year-1) {
		report.PreviousYearTotals.Income = report.PreviousYearTotals.Income.Add(month.Income)
		report.PreviousYearTotals.Expense = report.PreviousYearTotals.Expense.Add(month.Expense)
		report.PreviousYearTotals.Balance = report.PreviousYearTotals.Balance.Add(month.Balance)
	}

	return report, nil
}

func transactionsForYear(userID uuid.UUID, year int) ([]Transaction, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return TransactionsBetween(userID, from, from.AddDate(1, 0, 0))
}

func breakdownByMonth(transactions []Transaction, year int) []MonthBreakdown {
	breakdown := make([]MonthBreakdown, 12)
	for i := range breakdown {
		breakdown[i] = MonthBreakdown{Month: i + 1, Label: monthLabels[i], Year: year}
	}

	for _, transaction := range transactions {
		entry := &breakdown[int(transaction.DueDate.Month())-1]

		if transaction.Amount.IsPositive() {
			entry.Income = entry.Income.Add(transaction.Amount)
			continue
		}

		if !transaction.Amount.IsNegative() || transaction.Type == TypeAdjustment {
			continue
		}

		abs := transaction.Amount.Neg()
		entry.Expense = entry.Expense.Add(abs)

		switch transaction.Type {
		case TypeVariable:
			entry.Variable = entry.Variable.Add(abs)
		case TypeFixed:
			entry.Fixed = entry.Fixed.Add(abs)
		case TypeCard:
			entry.Card = entry.Card.Add(abs)
		}
	}

	for i := range breakdown {
		breakdown[i].Balance = breakdown[i].Income.Sub(breakdown[i].Expense)
	}

	return breakdown
}

func categoriesForYear(transactions []Transaction) []CategorySpending {
	totals := make(map[string]decimal.Decimal)
	for _, transaction := range transactions {
		if !transaction.Amount.IsNegative() || transaction.Type == TypeAdjustment {
			continue
		}

		totals[transaction.Category] = totals[transaction.Category].Add(transaction.Amount.Neg())
	}

	spending := make([]CategorySpending, 0, len(totals))
	for category, total := range totals {
		spending = append(spending, CategorySpending{Category: category, Total: total})
	}

	sort.Slice(spending, func(i, j int) bool {
		return spending[i].Total.GreaterThan(spending[j].Total)
	})

	return spending
}
