package jobs_test

import (
	"context"

	"github.com/centavo-zero/backend/internal/jobs"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	messages map[string]string
}

func (s *fakeSender) SendMessage(_ context.Context, chatID, text string) error {
	if s.messages == nil {
		s.messages = map[string]string{}
	}
	s.messages[chatID] = text
	return nil
}

func (suite *TestSuiteStandard) TestSendDailyAlerts() {
	linked := suite.createTestUser(models.User{TelegramID: "111"})
	quiet := suite.createTestUser(models.User{TelegramID: "222"})
	_ = quiet

	card := suite.createTestCard(models.Card{UserID: linked.ID, Name: "Nubank", ClosingDay: 5, DueDay: 10})

	now := date(2025, 3, 10)

	_ = suite.createTestTransaction(models.Transaction{
		UserID: linked.ID, Description: "Aluguel", Type: models.TypeFixed,
		Amount: decimal.NewFromFloat(-1200), DueDate: date(2025, 3, 10),
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID: linked.ID, Description: "Internet", Type: models.TypeFixed,
		Amount: decimal.NewFromFloat(-99.90), DueDate: date(2025, 3, 2),
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID: linked.ID, CardID: &card.ID, Description: "Notebook (1/3)", Type: models.TypeCard,
		Amount: decimal.NewFromFloat(-333.34), DueDate: date(2025, 3, 10),
	})

	sender := &fakeSender{}
	result, err := jobs.SendDailyAlerts(context.Background(), sender, now)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, result.Sent)
	assert.Equal(suite.T(), 0, result.Errors)

	// The quiet user has nothing to report and gets no message
	require.Len(suite.T(), sender.messages, 1)

	digest := sender.messages["111"]
	assert.Contains(suite.T(), digest, "📋 Resumo do dia")
	assert.Contains(suite.T(), digest, "⏰ Vencendo hoje:")
	assert.Contains(suite.T(), digest, "• Aluguel: R$ -1200,00")
	assert.Contains(suite.T(), digest, "🔴 Atrasadas:")
	assert.Contains(suite.T(), digest, "• Internet: R$ -99,90")
	assert.Contains(suite.T(), digest, "💳 Fatura fechada:")
	assert.Contains(suite.T(), digest, "• Nubank: R$ -333,34 — vence dia 10")
}

func (suite *TestSuiteStandard) TestSendDailyAlertsNothingDue() {
	_ = suite.createTestUser(models.User{TelegramID: "111"})

	sender := &fakeSender{}
	result, err := jobs.SendDailyAlerts(context.Background(), sender, date(2025, 3, 10))
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, result.Sent)
	assert.Empty(suite.T(), sender.messages)
}

func (suite *TestSuiteStandard) TestFormatDigestOnlyOverdue() {
	digest := jobs.FormatDigest(models.Alerts{
		Overdue: []models.Transaction{
			{Description: "Luz", Amount: decimal.NewFromFloat(-80)},
		},
	})

	assert.Equal(suite.T(), "📋 Resumo do dia\n\n🔴 Atrasadas:\n• Luz: R$ -80,00", digest)
}
