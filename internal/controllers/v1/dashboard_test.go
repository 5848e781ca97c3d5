package v1_test

import (
	"net/http"
	"time"

	"github.com/centavo-zero/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDashboardSummary() {
	user := suite.createTestUser(models.User{})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		Type:    models.TypeIncome,
		Amount:  decimal.NewFromFloat(5000),
		DueDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		Type:    models.TypeFixed,
		Amount:  decimal.NewFromFloat(-1200),
		DueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/summary?month=2025-03", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Data models.MonthSummary `json:"data"`
	}
	suite.decodeResponse(&recorder, &response)

	suite.Assert().True(decimal.NewFromFloat(5000).Equal(response.Data.Income))
	suite.Assert().True(decimal.NewFromFloat(1200).Equal(response.Data.Expense))
	suite.Assert().True(decimal.NewFromFloat(3800).Equal(response.Data.Total))
}

func (suite *TestSuiteStandard) TestDashboardSpending() {
	user := suite.createTestUser(models.User{})
	suite.createTestTransaction(models.Transaction{
		UserID:   user.ID,
		Category: "Mercado",
		Amount:   decimal.NewFromFloat(-400),
		DueDate:  time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestTransaction(models.Transaction{
		UserID:   user.ID,
		Category: "Lazer",
		Amount:   decimal.NewFromFloat(-150),
		DueDate:  time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/spending?month=2025-03", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Data []models.CategorySpending `json:"data"`
	}
	suite.decodeResponse(&recorder, &response)
	suite.Require().Len(response.Data, 2)

	// Largest first
	suite.Assert().Equal("Mercado", response.Data[0].Category)
	suite.Assert().True(decimal.NewFromFloat(400).Equal(response.Data[0].Total))
}

func (suite *TestSuiteStandard) TestDashboardBills() {
	user := suite.createTestUser(models.User{})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		Type:    models.TypeFixed,
		Amount:  decimal.NewFromFloat(-1200),
		DueDate: time.Date(2099, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		Type:    models.TypeFixed,
		Amount:  decimal.NewFromFloat(-80),
		IsPaid:  true,
		DueDate: time.Date(2099, 1, 7, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/bills?month=2099-01", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Data []models.Transaction `json:"data"`
	}
	suite.decodeResponse(&recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().False(response.Data[0].IsPaid)
}

func (suite *TestSuiteStandard) TestDashboardOverdue() {
	user := suite.createTestUser(models.User{})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		Type:    models.TypeFixed,
		Amount:  decimal.NewFromFloat(-99.90),
		DueDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/overdue", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Data []models.Transaction `json:"data"`
	}
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Len(response.Data, 1)
}

func (suite *TestSuiteStandard) TestDashboardInvoices() {
	user := suite.createTestUser(models.User{})
	card := suite.createTestCard(models.Card{UserID: user.ID, Name: "Nubank"})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		CardID:  &card.ID,
		Type:    models.TypeCard,
		Amount:  decimal.NewFromFloat(-333.34),
		DueDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/invoices?month=2025-03", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Data []models.CardInvoice `json:"data"`
	}
	suite.decodeResponse(&recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Nubank", response.Data[0].CardName)
	suite.Assert().True(decimal.NewFromFloat(333.34).Equal(response.Data[0].TotalUnpaid))
}

func (suite *TestSuiteStandard) TestDashboardAlerts() {
	user := suite.createTestUser(models.User{})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		Type:    models.TypeFixed,
		Amount:  decimal.NewFromFloat(-99.90),
		DueDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/alerts", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Data models.Alerts `json:"data"`
	}
	suite.decodeResponse(&recorder, &response)
	suite.Assert().Len(response.Data.Overdue, 1)
	suite.Assert().Empty(response.Data.DueToday)
}

func (suite *TestSuiteStandard) TestDashboardYearReport() {
	user := suite.createTestUser(models.User{})
	suite.createTestTransaction(models.Transaction{
		UserID:  user.ID,
		Type:    models.TypeIncome,
		Amount:  decimal.NewFromFloat(5000),
		DueDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/year?year=2025", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response struct {
		Data models.YearReport `json:"data"`
	}
	suite.decodeResponse(&recorder, &response)
	suite.Require().Len(response.Data.MonthlyBreakdown, 12)
	suite.Assert().True(decimal.NewFromFloat(5000).Equal(response.Data.YearTotals.Income))
}

func (suite *TestSuiteStandard) TestDashboardYearReportRequiresYear() {
	user := suite.createTestUser(models.User{})

	recorder := suite.request(user, http.MethodGet, "/v1/dashboard/year", nil)
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}
