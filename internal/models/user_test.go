package models_test

import (
	"github.com/centavo-zero/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserTrimWhitespace() {
	user := suite.createTestUser(models.User{
		Name:  "  Maria Silva \t",
		Email: " Maria@Example.com ",
	})

	assert.Equal(suite.T(), "Maria Silva", user.Name)
	assert.Equal(suite.T(), "maria@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserDuplicateEmail() {
	_ = suite.createTestUser(models.User{Email: "maria@example.com"})

	err := models.DB.Create(&models.User{Email: "maria@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEmailNotUnique)
}
