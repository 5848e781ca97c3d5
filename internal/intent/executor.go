package intent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centavo-zero/backend/internal/installment"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/money"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
)

// ErrNoCardAvailable is returned when an installment purchase is executed
// for a user without any registered card.
var ErrNoCardAvailable = errors.New("no card is registered for this user")

// Repository is the persistence the executor needs.
type Repository interface {
	CreateTransactions(ctx context.Context, transactions []models.Transaction) error
	CardsForUser(ctx context.Context, userID uuid.UUID) ([]models.Card, error)
}

// Executor stores the transactions an intent describes.
type Executor struct {
	repo Repository
	now  func() time.Time
}

// NewExecutor returns an executor reading the clock from now, which
// defaults to time.Now.
func NewExecutor(repo Repository, now func() time.Time) Executor {
	if now == nil {
		now = time.Now
	}

	return Executor{repo: repo, now: now}
}

// Execute dispatches on the intent type and returns the created
// transactions.
func (e Executor) Execute(ctx context.Context, userID uuid.UUID, in Intent) ([]models.Transaction, error) {
	switch intent := in.(type) {
	case Variable:
		transaction, err := e.ExecuteVariable(ctx, userID, intent)
		if err != nil {
			return nil, err
		}
		return []models.Transaction{transaction}, nil
	case Recurring:
		transaction, err := e.ExecuteRecurring(ctx, userID, intent)
		if err != nil {
			return nil, err
		}
		return []models.Transaction{transaction}, nil
	case Installment:
		transactions, _, err := e.ExecuteInstallment(ctx, userID, intent)
		return transactions, err
	default:
		return nil, fmt.Errorf("unknown intent type %T", in)
	}
}

// today returns the current date at midnight, keeping the clock's
// location.
func (e Executor) today() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ExecuteVariable records a one-off expense, due today.
func (e Executor) ExecuteVariable(ctx context.Context, userID uuid.UUID, in Variable) (models.Transaction, error) {
	transaction := models.Transaction{
		UserID:        userID,
		Description:   in.Description,
		Category:      in.Description,
		Amount:        money.FromCents(-in.AmountCents),
		Type:          models.TypeVariable,
		DueDate:       e.today(),
		PaymentMethod: in.Method,
	}

	err := e.repo.CreateTransactions(ctx, []models.Transaction{transaction})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// ExecuteRecurring records a fixed monthly bill. The first entry is due on
// the next occurrence of the recurring day, this month if it has not
// passed yet.
func (e Executor) ExecuteRecurring(ctx context.Context, userID uuid.UUID, in Recurring) (models.Transaction, error) {
	transaction := models.Transaction{
		UserID:       userID,
		Description:  in.Description,
		Category:     in.Description,
		Amount:       money.FromCents(-in.AmountCents),
		Type:         models.TypeFixed,
		DueDate:      installment.NextOccurrence(e.today(), in.RecurringDay),
		Recurring:    true,
		RecurringDay: in.RecurringDay,
	}

	err := e.repo.CreateTransactions(ctx, []models.Transaction{transaction})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// ExecuteInstallment records a card purchase as one transaction per
// installment, scheduled on the resolved card's billing cycle.
//
// The card's own closing and due day win over the due day parsed from the
// message: the invoice determines when an installment is actually due.
func (e Executor) ExecuteInstallment(ctx context.Context, userID uuid.UUID, in Installment) ([]models.Transaction, models.Card, error) {
	cards, err := e.repo.CardsForUser(ctx, userID)
	if err != nil {
		return nil, models.Card{}, err
	}

	card, err := resolveCard(cards, in.CardNameHint)
	if err != nil {
		return nil, models.Card{}, err
	}

	items, err := installment.BuildItems(installment.BuildInput{
		TotalAmount:  money.FromCents(in.AmountCents),
		Installments: in.Installments,
		DueDay:       card.DueDay,
		StartDate:    e.today(),
		ClosingDay:   card.ClosingDay,
	})
	if err != nil {
		return nil, models.Card{}, err
	}

	transactions := make([]models.Transaction, len(items))
	for i, item := range items {
		transactions[i] = models.Transaction{
			UserID:            userID,
			CardID:            &card.ID,
			Description:       fmt.Sprintf("%s (%d/%d)", in.Description, item.Number, item.Total),
			Category:          in.Description,
			Amount:            money.FromCents(item.Cents),
			Type:              models.TypeCard,
			DueDate:           item.DueDate,
			InstallmentNumber: item.Number,
			InstallmentTotal:  item.Total,
		}
	}

	err = e.repo.CreateTransactions(ctx, transactions)
	if err != nil {
		return nil, models.Card{}, err
	}

	return transactions, card, nil
}

// resolveCard picks the card matching the hint, or the first card when
// there is no hint. Matching is a case- and accent-insensitive substring
// match, so "mercado" finds "Mercado Pago".
func resolveCard(cards []models.Card, hint string) (models.Card, error) {
	if len(cards) == 0 {
		return models.Card{}, ErrNoCardAvailable
	}

	if hint == "" {
		return cards[0], nil
	}

	pattern := "*" + Fold(hint) + "*"
	for _, card := range cards {
		if glob.Glob(pattern, Fold(card.Name)) {
			return card, nil
		}
	}

	return cards[0], nil
}
