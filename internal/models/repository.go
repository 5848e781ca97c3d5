package models

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Repository exposes the persistence operations needed outside of HTTP
// handlers, for the Telegram flow and the background jobs. Handlers use
// the package functions directly.
type Repository struct{}

// CreateTransactions stores all drafts in a single transaction so that an
// installment purchase is either fully recorded or not at all.
func (Repository) CreateTransactions(ctx context.Context, transactions []Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return DB.WithContext(ctx).Create(&transactions).Error
}

// CardsForUser returns the user's cards, oldest first.
func (Repository) CardsForUser(ctx context.Context, userID uuid.UUID) ([]Card, error) {
	var cards []Card

	err := DB.WithContext(ctx).Where(&Card{UserID: userID}).Order("created_at ASC").Find(&cards).Error
	if err != nil {
		return nil, err
	}

	return cards, nil
}

// UserByTelegramID returns the user linked to the Telegram chat.
func (Repository) UserByTelegramID(ctx context.Context, telegramID string) (User, error) {
	var user User

	err := DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	return user, err
}

// UserByLinkCode returns the user whose pending link code matches.
func (Repository) UserByLinkCode(ctx context.Context, code string) (User, error) {
	var user User

	err := DB.WithContext(ctx).Where("telegram_link_code = ? AND telegram_link_code != ''", strings.TrimSpace(code)).First(&user).Error
	return user, err
}

// LinkTelegram connects the Telegram chat to the user and consumes the
// one-time code.
func (Repository) LinkTelegram(ctx context.Context, userID uuid.UUID, telegramID string) error {
	return DB.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"telegram_id":        telegramID,
			"telegram_link_code": "",
		}).Error
}
