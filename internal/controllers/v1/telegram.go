package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/centavo-zero/backend/internal/httputil"
	"github.com/centavo-zero/backend/internal/telegram"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Sender pushes the reply back to the chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// TelegramController wires the webhook to the message handler. The reply
// goes out through the Bot API client, not the webhook response body.
type TelegramController struct {
	Secret  string
	Handler telegram.Handler
	Client  Sender
}

func (tc TelegramController) RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/webhook", httputil.OptionsPost)
	r.POST("/webhook", tc.Webhook)
}

// update is the part of the Telegram Bot API update the backend reads.
type update struct {
	Message struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// Webhook receives a Bot API update, authenticated by the secret token
// header configured when registering the webhook.
func (tc TelegramController) Webhook(c *gin.Context) {
	if c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != tc.Secret {
		c.JSON(status(errWebhookUnauthorized), httpError{Error: errWebhookUnauthorized.Error()})
		return
	}

	var u update
	err := httputil.BindData(c, &u)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Updates without a text message (edits, stickers, joins) are
	// acknowledged and dropped.
	if u.Message.Text == "" || u.Message.Chat.ID == 0 {
		c.Status(http.StatusOK)
		return
	}

	chatID := strconv.FormatInt(u.Message.Chat.ID, 10)
	reply := tc.Handler.HandleMessage(c.Request.Context(), chatID, u.Message.Text)

	err = tc.Client.SendMessage(c.Request.Context(), chatID, reply)
	if err != nil {
		log.Error().Err(err).Msg("telegram: delivering the reply failed")
	}

	c.Status(http.StatusOK)
}
