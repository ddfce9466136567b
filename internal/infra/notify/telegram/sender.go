// Package telegram delivers formatted alerts to subscribers through the
// Telegram Bot API.
package telegram

import (
	"context"
	"net/http"
	"time"

	"github.com/walletping/walletping/internal/dispatch"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender implements dispatch.AlertSender over a bot token. Every API call is
// bounded by the HTTP client timeout, so one slow delivery cannot hold the
// dispatcher's fan-out open indefinitely.
type Sender struct {
	bot *tgbotapi.BotAPI
}

var _ dispatch.AlertSender = (*Sender)(nil)

// NewSender authenticates the bot token against the Telegram API.
func NewSender(token string, timeout time.Duration) (*Sender, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, err
	}

	return &Sender{bot: bot}, nil
}

// SendAlert posts the message to the recipient's chat with HTML formatting.
func (s *Sender) SendAlert(ctx context.Context, recipientID int64, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(recipientID, message)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	_, err := s.bot.Send(msg)
	return err
}
