// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"net/http"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// chatRecipient addresses a chat by numeric ID or @username.
type chatRecipient string

func (c chatRecipient) Recipient() string { return string(c) }

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot    *telebot.Bot
	logger *logrus.Entry
}

// NewBot creates a send-only bot. It runs offline: no getMe call and no update polling.
// apiURL may be empty to use the public Bot API.
func NewBot(token, apiURL string, httpClient *http.Client) (*telebot.Bot, error) {
	pref := telebot.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  httpClient,
	}
	b, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("could not create Telegram bot: %w", err)
	}
	return b, nil
}

func NewTelebotAdapter(b *telebot.Bot, logger *logrus.Entry) *TelebotAdapter {
	return &TelebotAdapter{bot: b, logger: logger}
}

// Deliver sends a plain-text message to chatID. Any failure is reported as a delivery error.
func (tba *TelebotAdapter) Deliver(ctx context.Context, chatID string, text string) error {
	if err := ctx.Err(); err != nil {
		return homework.DeliveryError(err)
	}

	msg, err := tba.bot.Send(chatRecipient(chatID), text, &telebot.SendOptions{DisableWebPagePreview: true})
	if err != nil {
		tba.logger.WithError(err).WithField("chat_id", chatID).Error("Telegram message was not sent")
		return homework.DeliveryError(err)
	}

	logCtx := tba.logger.WithField("chat_id", chatID)
	if msg != nil {
		logCtx = logCtx.WithField("message_id", msg.ID)
	}
	logCtx.Info("Telegram message sent")
	return nil
}
