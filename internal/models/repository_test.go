package models_test

import (
	"context"

	"github.com/centavo-zero/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRepositoryLinkFlow() {
	repo := models.Repository{}
	ctx := context.Background()

	user := suite.createTestUser(models.User{TelegramLinkCode: "123456"})

	found, err := repo.UserByLinkCode(ctx, " 123456 ")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), user.ID, found.ID)

	err = repo.LinkTelegram(ctx, user.ID, "987654321")
	assert.Nil(suite.T(), err)

	linked, err := repo.UserByTelegramID(ctx, "987654321")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), user.ID, linked.ID)

	// The code is one-time
	assert.Empty(suite.T(), linked.TelegramLinkCode)
	_, err = repo.UserByLinkCode(ctx, "123456")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRepositoryUnknownTelegramID() {
	repo := models.Repository{}

	_, err := repo.UserByTelegramID(context.Background(), "does-not-exist")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRepositoryCreateTransactions() {
	repo := models.Repository{}
	ctx := context.Background()

	user := suite.createTestUser(models.User{})

	err := repo.CreateTransactions(ctx, []models.Transaction{
		{UserID: user.ID, Description: "Notebook (1/2)", Type: models.TypeCard, Amount: decimal.NewFromFloat(-500)},
		{UserID: user.ID, Description: "Notebook (2/2)", Type: models.TypeCard, Amount: decimal.NewFromFloat(-500)},
	})
	assert.Nil(suite.T(), err)

	var count int64
	assert.Nil(suite.T(), models.DB.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(2), count)

	// Nothing to do is not an error
	assert.Nil(suite.T(), repo.CreateTransactions(ctx, nil))
}
