package v1_test

import (
	"net/http"

	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestWebhookRequiresSecret() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`{ "message": { "text": "100 gasolina", "chat": { "id": 555 } } }`)
	suite.Assert().Equal(http.StatusUnauthorized, recorder.Code)
	suite.Assert().Empty(suite.sender.messages)

	recorder = test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`{ "message": { "text": "100 gasolina", "chat": { "id": 555 } } }`,
		map[string]string{"X-Telegram-Bot-Api-Secret-Token": "wrong"})
	suite.Assert().Equal(http.StatusUnauthorized, recorder.Code)
	suite.Assert().Empty(suite.sender.messages)
}

func (suite *TestSuiteStandard) TestWebhookDropsNonMessageUpdates() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`{ "message": { "text": "", "chat": { "id": 0 } } }`,
		map[string]string{"X-Telegram-Bot-Api-Secret-Token": webhookSecret})
	suite.Assert().Equal(http.StatusOK, recorder.Code)
	suite.Assert().Empty(suite.sender.messages)
}

func (suite *TestSuiteStandard) TestWebhookInvalidBody() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`not json`,
		map[string]string{"X-Telegram-Bot-Api-Secret-Token": webhookSecret})
	suite.Assert().Equal(http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestWebhookUnlinkedChat() {
	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`{ "message": { "text": "100 gasolina", "chat": { "id": 555 } } }`,
		map[string]string{"X-Telegram-Bot-Api-Secret-Token": webhookSecret})
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	suite.Require().Len(suite.sender.messages, 1)
	suite.Assert().Contains(suite.sender.messages[0], "Conta não vinculada")
}

func (suite *TestSuiteStandard) TestWebhookLinkFlow() {
	user := suite.createTestUser(models.User{TelegramLinkCode: "123456"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`{ "message": { "text": "123456", "chat": { "id": 555 } } }`,
		map[string]string{"X-Telegram-Bot-Api-Secret-Token": webhookSecret})
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	suite.Require().Len(suite.sender.messages, 1)
	suite.Assert().Contains(suite.sender.messages[0], "Conta vinculada")

	var linked models.User
	suite.Require().Nil(models.DB.First(&linked, user.ID).Error)
	suite.Assert().Equal("555", linked.TelegramID)
	suite.Assert().Empty(linked.TelegramLinkCode)
}

func (suite *TestSuiteStandard) TestWebhookCreatesExpense() {
	suite.createTestUser(models.User{TelegramID: "555"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`{ "message": { "text": "200 farmácia pix", "chat": { "id": 555 } } }`,
		map[string]string{"X-Telegram-Bot-Api-Secret-Token": webhookSecret})
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	suite.Require().Len(suite.sender.messages, 1)
	suite.Assert().Equal("✓ Despesa variável: farmácia R$ 200.00 (PIX).", suite.sender.messages[0])

	var transactions []models.Transaction
	suite.Require().Nil(models.DB.Find(&transactions).Error)
	suite.Require().Len(transactions, 1)
	suite.Assert().Equal("farmácia", transactions[0].Description)
	suite.Assert().Equal(models.TypeVariable, transactions[0].Type)
	suite.Assert().Equal(models.PaymentPix, transactions[0].PaymentMethod)
	suite.Assert().True(decimal.NewFromFloat(-200).Equal(transactions[0].Amount))
}

func (suite *TestSuiteStandard) TestWebhookUnparseableMessage() {
	suite.createTestUser(models.User{TelegramID: "555"})

	recorder := test.Request(suite.T(), suite.router, http.MethodPost, "/v1/telegram/webhook",
		`{ "message": { "text": "bom dia", "chat": { "id": 555 } } }`,
		map[string]string{"X-Telegram-Bot-Api-Secret-Token": webhookSecret})
	suite.Assert().Equal(http.StatusOK, recorder.Code)

	suite.Require().Len(suite.sender.messages, 1)
	suite.Assert().Contains(suite.sender.messages[0], "Não entendi")
}
