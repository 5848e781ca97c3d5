package models_test

import (
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSummaryForMonth() {
	user := suite.createTestUser(models.User{})

	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Salário", Type: models.TypeIncome,
		Amount: decimal.NewFromFloat(5000), DueDate: date(2025, 3, 5),
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Mercado", Type: models.TypeVariable,
		Amount: decimal.NewFromFloat(-350.75), DueDate: date(2025, 3, 12),
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Ajuste de saldo (conciliação)", Type: models.TypeAdjustment,
		Amount: decimal.NewFromFloat(-20), DueDate: date(2025, 3, 12),
	})

	summary, err := models.SummaryForMonth(user.ID, types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)

	assert.True(suite.T(), summary.Income.Equal(decimal.NewFromFloat(5000)), "Income is %s", summary.Income)

	// The adjustment moves the total but is not spending
	assert.True(suite.T(), summary.Expense.Equal(decimal.NewFromFloat(350.75)), "Expense is %s", summary.Expense)
	assert.True(suite.T(), summary.Total.Equal(decimal.NewFromFloat(4629.25)), "Total is %s", summary.Total)
}

func (suite *TestSuiteStandard) TestReportForYear() {
	user := suite.createTestUser(models.User{})

	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Salário", Type: models.TypeIncome, Category: "Renda",
		Amount: decimal.NewFromFloat(5000), DueDate: date(2025, 1, 5),
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Mercado", Type: models.TypeVariable, Category: "Mercado",
		Amount: decimal.NewFromFloat(-400), DueDate: date(2025, 1, 10),
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Aluguel", Type: models.TypeFixed, Category: "Moradia",
		Amount: decimal.NewFromFloat(-1200), DueDate: date(2025, 2, 5),
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Notebook (1/3)", Type: models.TypeCard, Category: "Eletrônicos",
		Amount: decimal.NewFromFloat(-333.34), DueDate: date(2025, 2, 10),
	})

	// Previous year, only in the comparison totals
	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Mercado", Type: models.TypeVariable, Category: "Mercado",
		Amount: decimal.NewFromFloat(-100), DueDate: date(2024, 6, 10),
	})

	report, err := models.ReportForYear(user.ID, 2025)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), report.MonthlyBreakdown, 12)

	january := report.MonthlyBreakdown[0]
	assert.Equal(suite.T(), "Jan", january.Label)
	assert.True(suite.T(), january.Income.Equal(decimal.NewFromFloat(5000)))
	assert.True(suite.T(), january.Expense.Equal(decimal.NewFromFloat(400)))
	assert.True(suite.T(), january.Balance.Equal(decimal.NewFromFloat(4600)))
	assert.True(suite.T(), january.Variable.Equal(decimal.NewFromFloat(400)))

	february := report.MonthlyBreakdown[1]
	assert.True(suite.T(), february.Fixed.Equal(decimal.NewFromFloat(1200)))
	assert.True(suite.T(), february.Card.Equal(decimal.NewFromFloat(333.34)))

	assert.True(suite.T(), report.YearTotals.Income.Equal(decimal.NewFromFloat(5000)))
	assert.True(suite.T(), report.YearTotals.Expense.Equal(decimal.NewFromFloat(1933.34)))
	assert.True(suite.T(), report.PreviousYearTotals.Expense.Equal(decimal.NewFromFloat(100)))

	require.NotEmpty(suite.T(), report.CategoryTotals)
	assert.Equal(suite.T(), "Moradia", report.CategoryTotals[0].Category)
}
