package v1_test

import (
	"net/http"

	v1 "github.com/centavo-zero/backend/internal/controllers/v1"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGoalsCreateAndList() {
	user := suite.createTestUser(models.User{})

	recorder := suite.request(user, http.MethodPost, "/v1/goals", []v1.GoalEditable{
		{Category: "Mercado", MonthlyLimit: decimal.NewFromFloat(800)},
		{Category: "Lazer", MonthlyLimit: decimal.NewFromFloat(300)},
	})
	suite.Assert().Equal(http.StatusCreated, recorder.Code)

	recorder = suite.request(user, http.MethodGet, "/v1/goals", nil)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var response v1.GoalListResponse
	suite.decodeResponse(&recorder, &response)
	suite.Require().Len(response.Data, 2)

	// Sorted by category
	suite.Assert().Equal("Lazer", response.Data[0].Category)
	suite.Assert().Equal("Mercado", response.Data[1].Category)
}

func (suite *TestSuiteStandard) TestGoalsCreateDuplicateCategory() {
	user := suite.createTestUser(models.User{})
	suite.createTestGoal(models.CategoryGoal{UserID: user.ID, Category: "Mercado"})

	recorder := suite.request(user, http.MethodPost, "/v1/goals", []v1.GoalEditable{
		{Category: "Mercado", MonthlyLimit: decimal.NewFromFloat(900)},
	})
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestGoalUpdate() {
	user := suite.createTestUser(models.User{})
	goal := suite.createTestGoal(models.CategoryGoal{UserID: user.ID, Category: "Mercado"})

	recorder := suite.request(user, http.MethodPatch, "/v1/goals/"+goal.ID.String(), `{ "monthlyLimit": "650.00" }`)
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	var updated models.CategoryGoal
	suite.Require().Nil(models.DB.First(&updated, goal.ID).Error)
	suite.Assert().True(decimal.NewFromFloat(650).Equal(updated.MonthlyLimit))
	suite.Assert().Equal("Mercado", updated.Category)
}

func (suite *TestSuiteStandard) TestGoalDelete() {
	user := suite.createTestUser(models.User{})
	goal := suite.createTestGoal(models.CategoryGoal{UserID: user.ID, Category: "Mercado"})

	recorder := suite.request(user, http.MethodDelete, "/v1/goals/"+goal.ID.String(), nil)
	suite.Assert().Equal(http.StatusNoContent, recorder.Code)

	recorder = suite.request(user, http.MethodGet, "/v1/goals/"+goal.ID.String(), nil)
	suite.Assert().Equal(http.StatusNotFound, recorder.Code)
}
