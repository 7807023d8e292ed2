package notify

import (
	"bdaywisher/internal/domain/entity"
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSender is the part of tgbotapi.BotAPI used to send alerts.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends alerts to a single Telegram chat.
type TelegramNotifier struct {
	bot    TelegramSender
	chatID int64
}

// NewTelegramBot authenticates a Telegram bot.
func NewTelegramBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return bot, nil
}

// NewTelegramNotifier creates a TelegramNotifier for chatID.
func NewTelegramNotifier(bot TelegramSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (n *TelegramNotifier) Name() string { return "telegram" }

// Notify sends the alert. With sound off Telegram delivers it silently.
func (n *TelegramNotifier) Notify(_ context.Context, payload entity.AlertPayload) error {
	msg := tgbotapi.NewMessage(n.chatID, Text(payload))
	msg.DisableNotification = !payload.Sound
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send to chat %d: %w", n.chatID, err)
	}
	return nil
}
