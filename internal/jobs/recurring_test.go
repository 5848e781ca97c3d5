package jobs_test

import (
	"time"

	"github.com/centavo-zero/backend/internal/jobs"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (suite *TestSuiteStandard) TestGenerateRecurring() {
	user := suite.createTestUser(models.User{})

	// Template from a previous month
	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Aluguel", Category: "Moradia", Type: models.TypeFixed,
		Amount: decimal.NewFromFloat(-1200), DueDate: date(2025, 2, 5), Recurring: true, RecurringDay: 5,
	})

	result, err := jobs.GenerateRecurring(types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Created)
	assert.Equal(suite.T(), 0, result.Skipped)

	transactions, err := models.TransactionsForMonth(user.ID, types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 1)
	assert.Equal(suite.T(), date(2025, 3, 5), transactions[0].DueDate)
	assert.True(suite.T(), transactions[0].Recurring)
	assert.False(suite.T(), transactions[0].IsPaid)
}

func (suite *TestSuiteStandard) TestGenerateRecurringIdempotent() {
	user := suite.createTestUser(models.User{})

	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Aluguel", Category: "Moradia", Type: models.TypeFixed,
		Amount: decimal.NewFromFloat(-1200), DueDate: date(2025, 2, 5), Recurring: true, RecurringDay: 5,
	})

	_, err := jobs.GenerateRecurring(types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)

	// The second run finds the materialized entry and does nothing
	result, err := jobs.GenerateRecurring(types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, result.Created)
	assert.Equal(suite.T(), 1, result.Skipped)

	transactions, err := models.TransactionsForMonth(user.ID, types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), transactions, 1)
}

func (suite *TestSuiteStandard) TestGenerateRecurringDeduplicatesRules() {
	user := suite.createTestUser(models.User{})

	// Two materializations of the same rule, one rule overall
	for _, month := range []time.Month{1, 2} {
		_ = suite.createTestTransaction(models.Transaction{
			UserID: user.ID, Description: "Internet", Category: "Casa", Type: models.TypeFixed,
			Amount: decimal.NewFromFloat(-100), DueDate: date(2025, month, 12), Recurring: true, RecurringDay: 12,
		})
	}

	result, err := jobs.GenerateRecurring(types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Created)
}

func (suite *TestSuiteStandard) TestGenerateRecurringClampsDay() {
	user := suite.createTestUser(models.User{})

	_ = suite.createTestTransaction(models.Transaction{
		UserID: user.ID, Description: "Fatura", Category: "Cartão", Type: models.TypeFixed,
		Amount: decimal.NewFromFloat(-500), DueDate: date(2025, 1, 31), Recurring: true, RecurringDay: 31,
	})

	_, err := jobs.GenerateRecurring(types.NewMonth(2025, 2))
	require.Nil(suite.T(), err)

	transactions, err := models.TransactionsForMonth(user.ID, types.NewMonth(2025, 2))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), transactions, 1)
	assert.Equal(suite.T(), date(2025, 2, 28), transactions[0].DueDate)
}
