// Package intent turns parsed chat commands into transaction drafts.
package intent

import "github.com/centavo-zero/backend/internal/models"

// Intent is a parsed command, ready to be executed. The concrete types
// are Variable, Recurring and Installment.
type Intent interface {
	isIntent()
}

// Variable is a one-off expense, paid immediately.
type Variable struct {
	AmountCents int64
	Description string
	Method      models.PaymentMethod
}

// Recurring is a fixed monthly bill with a day of the month it is due.
type Recurring struct {
	AmountCents  int64
	Description  string
	RecurringDay int
}

// Installment is a card purchase split into equal monthly installments.
type Installment struct {
	AmountCents int64
	Description string

	// Installments is the number of monthly charges, at least 2.
	Installments int

	// DueDay is the fallback due day when the resolved card does not
	// determine one.
	DueDay int

	// CardNameHint is the free-text card name from the message, empty
	// when the user did not name a card.
	CardNameHint string
}

func (Variable) isIntent()    {}
func (Recurring) isIntent()   {}
func (Installment) isIntent() {}
