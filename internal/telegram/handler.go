package telegram

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/centavo-zero/backend/internal/intent"
	"github.com/centavo-zero/backend/internal/metrics"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/money"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Directory resolves Telegram chats to users and links new chats.
type Directory interface {
	UserByTelegramID(ctx context.Context, telegramID string) (models.User, error)
	UserByLinkCode(ctx context.Context, code string) (models.User, error)
	LinkTelegram(ctx context.Context, userID uuid.UUID, telegramID string) error
}

// A link code is exactly six digits, nothing else parses as one.
var codeRegex = regexp.MustCompile(`^\d{6}$`)

const helpReply = "Não entendi. Exemplos:\n" +
	"• 100 gasolina → despesa hoje\n" +
	"• 200 farmácia débito / 200 farmácia pix / 200 farmácia dinheiro\n" +
	"• 1200 aluguel dia 5 → conta fixa\n" +
	"• 1000 10x cartao mercado pago → parcelado"

// Handler answers incoming Telegram messages.
type Handler struct {
	directory Directory
	executor  intent.Executor
}

func NewHandler(directory Directory, executor intent.Executor) Handler {
	return Handler{directory: directory, executor: executor}
}

// HandleMessage processes one message and returns the reply text. It
// never fails towards the webhook: storage errors become an error reply
// for the user.
func (h Handler) HandleMessage(ctx context.Context, telegramID, text string) string {
	user, err := h.directory.UserByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return h.handleUnlinked(ctx, telegramID, text)
		}

		log.Error().Err(err).Msg("telegram: resolving user failed")
		metrics.TelegramMessages.WithLabelValues("error").Inc()
		return "Erro ao processar a mensagem. Tente novamente."
	}

	parsed, err := ParseMessage(text)
	if err != nil {
		metrics.TelegramMessages.WithLabelValues("error").Inc()
		return fmt.Sprintf("Erro: %s.", "o dia deve ser entre 1 e 31")
	}

	if parsed == nil {
		metrics.TelegramMessages.WithLabelValues("miss").Inc()
		return helpReply
	}

	return h.execute(ctx, user, parsed)
}

// handleUnlinked runs the link flow: an unknown chat may only send a
// six-digit link code generated in the web app.
func (h Handler) handleUnlinked(ctx context.Context, telegramID, text string) string {
	trimmed := strings.TrimSpace(text)
	if !codeRegex.MatchString(trimmed) {
		return "Conta não vinculada. No app, vá em Configurações > Vincular Telegram e envie o código aqui."
	}

	user, err := h.directory.UserByLinkCode(ctx, trimmed)
	if err != nil {
		return "Código inválido ou expirado. Gere um novo no app em Configurações > Vincular Telegram."
	}

	err = h.directory.LinkTelegram(ctx, user.ID, telegramID)
	if err != nil {
		log.Error().Err(err).Msg("telegram: linking account failed")
		return "Erro ao vincular a conta. Tente novamente."
	}

	metrics.TelegramMessages.WithLabelValues("link").Inc()
	return "✓ Conta vinculada! Agora você pode enviar despesas pelo Telegram. Ex: 100 gasolina"
}

func (h Handler) execute(ctx context.Context, user models.User, parsed intent.Intent) string {
	switch in := parsed.(type) {
	case intent.Variable:
		transaction, err := h.executor.ExecuteVariable(ctx, user.ID, in)
		if err != nil {
			return errorReply(err)
		}

		metrics.TelegramMessages.WithLabelValues("variable").Inc()
		metrics.TransactionsCreated.WithLabelValues(string(models.TypeVariable)).Inc()
		return fmt.Sprintf("✓ Despesa variável: %s R$ %s%s.",
			transaction.Description, formatCents(in.AmountCents), methodSuffix(in.Method))

	case intent.Recurring:
		transaction, err := h.executor.ExecuteRecurring(ctx, user.ID, in)
		if err != nil {
			return errorReply(err)
		}

		metrics.TelegramMessages.WithLabelValues("recurring").Inc()
		metrics.TransactionsCreated.WithLabelValues(string(models.TypeFixed)).Inc()
		return fmt.Sprintf("✓ Conta fixa: %s R$ %s todo dia %d.",
			transaction.Description, formatCents(in.AmountCents), in.RecurringDay)

	case intent.Installment:
		transactions, card, err := h.executor.ExecuteInstallment(ctx, user.ID, in)
		if err != nil {
			if errors.Is(err, intent.ErrNoCardAvailable) {
				return "Cadastre um cartão no app para compras parceladas."
			}
			return errorReply(err)
		}

		metrics.TelegramMessages.WithLabelValues("installment").Inc()
		metrics.TransactionsCreated.WithLabelValues(string(models.TypeCard)).Add(float64(len(transactions)))

		perMonth := money.FromCents(in.AmountCents).Div(decimal.NewFromInt(int64(in.Installments)))
		return fmt.Sprintf("✓ Parcelado no cartão %s: %s\nR$ %s em %dx = R$ %s/mês (venc. dia %d).",
			card.Name, in.Description, formatCents(in.AmountCents), in.Installments,
			perMonth.StringFixed(2), card.DueDay)
	}

	return helpReply
}

func errorReply(err error) string {
	log.Error().Err(err).Msg("telegram: storing transaction failed")
	metrics.TelegramMessages.WithLabelValues("error").Inc()
	return "Erro ao salvar. Tente novamente."
}

func formatCents(cents int64) string {
	return money.FromCents(cents).StringFixed(2)
}

var methodLabels = map[models.PaymentMethod]string{
	models.PaymentDebit:  "débito",
	models.PaymentPix:    "PIX",
	models.PaymentCash:   "dinheiro",
	models.PaymentCredit: "crédito",
}

func methodSuffix(method models.PaymentMethod) string {
	if label, ok := methodLabels[method]; ok {
		return fmt.Sprintf(" (%s)", label)
	}

	return ""
}
