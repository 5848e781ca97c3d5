package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const apiBase = "https://api.telegram.org"

// Client is a minimal Telegram Bot API client, just enough to answer
// webhook messages and push notifications.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the bot identified by token.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    apiBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// SendMessage delivers text to the chat, retrying transient failures
// with exponential backoff. Client errors from the Bot API are not
// retried, a rejected request stays rejected.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		err := c.send(ctx, body)
		if err != nil {
			log.Warn().Err(err).Msg("telegram: sendMessage failed")
		}

		return err
	}, backoff.WithContext(b, ctx))
}

func (c *Client) send(ctx context.Context, body []byte) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("telegram API responded with status %d", resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return backoff.Permanent(fmt.Errorf("telegram API rejected the message with status %d: %s", resp.StatusCode, payload))
	}

	return nil
}
