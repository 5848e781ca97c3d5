// Package telegram implements the chat side of the tracker: the message
// grammar, the conversation handler and the Bot API client.
package telegram

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/centavo-zero/backend/internal/intent"
	"github.com/centavo-zero/backend/internal/models"
	"github.com/centavo-zero/backend/internal/money"
	"github.com/shopspring/decimal"
)

// ErrDayOutOfRange is returned when a message names a day of the month
// outside 1..31.
var ErrDayOutOfRange = errors.New("the day must be between 1 and 31")

// The grammar is a fixed set of patterns over the normalized message.
// Precedence is installment, then recurring, then variable; a message with
// both an installment marker and a day marker is an installment purchase.
var (
	// "100 gasolina", "99,50 mercado". The first token is the amount,
	// everything after it the remainder.
	reAmount = regexp.MustCompile(`(?s)^\s*(\d+(?:[.,]\d{1,2})?)\s+(.+)$`)

	// "em 10x", "10x", "3 vezes"
	reInstallment = regexp.MustCompile(`(?i)(?:em\s+)?(\d+)\s*(?:x|vezes)\b`)

	// "dia 5"
	reDay = regexp.MustCompile(`(?i)\bdia\s+(\d{1,2})\b`)

	// "no cartão Nubank", "cartao mercado pago". The card name is
	// optional, "cartão" alone just marks the purchase.
	reCard = regexp.MustCompile(`(?i)\b(?:no\s+)?cart[ãa]o(?:\s+([a-z0-9\x{00C0}-\x{024F}\s]+))?`)

	reSpaces = regexp.MustCompile(`\s+`)
)

// Trailing payment-method keywords for variable expenses, checked in
// order, first match wins.
var paymentSuffixes = []struct {
	re     *regexp.Regexp
	method models.PaymentMethod
}{
	{regexp.MustCompile(`(?i)\s+debito$`), models.PaymentDebit},
	{regexp.MustCompile(`(?i)\s+d[eé]bito$`), models.PaymentDebit},
	{regexp.MustCompile(`(?i)\s+pix$`), models.PaymentPix},
	{regexp.MustCompile(`(?i)\s+dinheiro$`), models.PaymentCash},
	{regexp.MustCompile(`(?i)\s+credito$`), models.PaymentCredit},
	{regexp.MustCompile(`(?i)\s+cr[eé]dito$`), models.PaymentCredit},
}

// parseAmountCents normalizes a Brazilian-format amount to cents.
//
// Dots are thousands separators and are dropped, a comma is the decimal
// separator: "1.500" is 1500.00 and "99,50" is 99.50.
func parseAmountCents(raw string) (int64, bool) {
	normalized := strings.ReplaceAll(raw, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	value, err := decimal.NewFromString(normalized)
	if err != nil || !value.IsPositive() {
		return 0, false
	}

	return money.ToCents(value), true
}

func parseDay(raw string) (int, error) {
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 || day > 31 {
		return 0, ErrDayOutOfRange
	}

	return day, nil
}

// stripFirst removes the first match of the pattern, the way the grammar
// peels recognized tokens off the remainder.
func stripFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}

	return s[:loc[0]] + " " + s[loc[1]:]
}

func collapse(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// ParseMessage interprets a free-text message as a financial command.
//
// It returns nil when the message does not match the grammar, and an
// error for a recognized message with an invalid day. Examples:
//
//	"100 gasolina"                  one-off expense, today
//	"200 farmácia pix"              one-off expense paid by Pix
//	"1200 aluguel dia 5"            fixed bill, every 5th
//	"1000 em 10x no cartao dia 10"  card purchase in 10 installments
func ParseMessage(text string) (intent.Intent, error) {
	match := reAmount.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return nil, nil
	}

	amountCents, ok := parseAmountCents(match[1])
	if !ok {
		return nil, nil
	}

	rest := collapse(match[2])

	dayMatch := reDay.FindStringSubmatch(rest)
	cardMatch := reCard.FindStringSubmatch(rest)

	if reInstallment.MatchString(rest) {
		return parseInstallment(amountCents, rest, dayMatch, cardMatch)
	}

	if dayMatch != nil {
		return parseRecurring(amountCents, rest, dayMatch)
	}

	return parseVariable(amountCents, rest), nil
}

func parseInstallment(amountCents int64, rest string, dayMatch, cardMatch []string) (intent.Intent, error) {
	count, _ := strconv.Atoi(reInstallment.FindStringSubmatch(rest)[1])
	count = min(60, max(2, count))

	day := 10
	if dayMatch != nil {
		var err error
		day, err = parseDay(dayMatch[1])
		if err != nil {
			return nil, err
		}
	}

	var cardName string
	if cardMatch != nil {
		cardName = strings.TrimSpace(cardMatch[1])
	}

	// Whatever text the recognized tokens leave behind. Without an
	// explicit card name it doubles as the hint, so "1000 10x mercado
	// pago" still names the card.
	leftover := collapse(stripFirst(reCard, stripFirst(reDay, stripFirst(reInstallment, rest))))
	if cardName == "" && leftover != "" {
		cardName = leftover
	}

	description := cardName
	if description == "" {
		description = leftover
	}
	if description == "" {
		description = "Parcelado"
	}

	return intent.Installment{
		AmountCents:  amountCents,
		Description:  description,
		Installments: count,
		DueDay:       day,
		CardNameHint: cardName,
	}, nil
}

func parseRecurring(amountCents int64, rest string, dayMatch []string) (intent.Intent, error) {
	day, err := parseDay(dayMatch[1])
	if err != nil {
		return nil, err
	}

	description := collapse(stripFirst(reDay, rest))
	if description == "" {
		return nil, nil
	}

	return intent.Recurring{
		AmountCents:  amountCents,
		Description:  description,
		RecurringDay: day,
	}, nil
}

func parseVariable(amountCents int64, rest string) intent.Intent {
	description := strings.TrimSpace(rest)

	var method models.PaymentMethod
	for _, suffix := range paymentSuffixes {
		if suffix.re.MatchString(description) {
			description = strings.TrimSpace(stripFirst(suffix.re, description))
			method = suffix.method
			break
		}
	}

	if description == "" {
		description = "Despesa"
	}

	return intent.Variable{
		AmountCents: amountCents,
		Description: description,
		Method:      method,
	}
}
