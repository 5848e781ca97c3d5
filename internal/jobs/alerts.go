package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/centavo-zero/backend/internal/metrics"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Sender pushes a message to a Telegram chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// AlertsResult reports how many digests a run delivered.
type AlertsResult struct {
	Sent   int
	Errors int
}

// SendDailyAlerts sends every linked user their digest for today: bills
// due today, overdue bills and closed card invoices. Users with nothing
// to report get no message.
func SendDailyAlerts(ctx context.Context, sender Sender, now time.Time) (AlertsResult, error) {
	users, err := models.UsersWithTelegram()
	if err != nil {
		metrics.JobRuns.WithLabelValues("alerts", "error").Inc()
		return AlertsResult{}, err
	}

	var result AlertsResult

	for _, user := range users {
		alerts, err := models.AlertsForUser(user.ID, now)
		if err != nil {
			log.Error().Err(err).Str("user", user.ID.String()).Msg("collecting alerts failed")
			result.Errors++
			continue
		}

		if alerts.Empty() {
			continue
		}

		err = sender.SendMessage(ctx, user.TelegramID, FormatDigest(alerts))
		if err != nil {
			log.Error().Err(err).Str("user", user.ID.String()).Msg("sending the digest failed")
			result.Errors++
			continue
		}

		metrics.NotificationsSent.Inc()
		result.Sent++
	}

	log.Info().Int("sent", result.Sent).Int("errors", result.Errors).Msg("daily alerts delivered")

	metrics.JobRuns.WithLabelValues("alerts", "success").Inc()
	return result, nil
}

// FormatDigest renders the alerts as the Telegram message.
func FormatDigest(alerts models.Alerts) string {
	lines := []string{"📋 Resumo do dia"}

	if len(alerts.DueToday) > 0 {
		lines = append(lines, "", "⏰ Vencendo hoje:")
		for _, transaction := range alerts.DueToday {
			lines = append(lines, fmt.Sprintf("• %s: %s", transaction.Description, formatBRL(transaction.Amount)))
		}
	}

	if len(alerts.Overdue) > 0 {
		lines = append(lines, "", "🔴 Atrasadas:")
		for _, transaction := range alerts.Overdue {
			lines = append(lines, fmt.Sprintf("• %s: %s", transaction.Description, formatBRL(transaction.Amount)))
		}
	}

	if len(alerts.InvoiceClosed) > 0 {
		lines = append(lines, "", "💳 Fatura fechada:")
		for _, invoice := range alerts.InvoiceClosed {
			lines = append(lines, fmt.Sprintf("• %s: %s — vence dia %d", invoice.CardName, formatBRL(invoice.TotalUnpaid), invoice.DueDay))
		}
	}

	return strings.Join(lines, "\n")
}

// formatBRL renders an amount the Brazilian way, comma as the decimal
// separator: "R$ 1234,56".
func formatBRL(amount decimal.Decimal) string {
	return "R$ " + strings.ReplaceAll(amount.StringFixed(2), ".", ",")
}
