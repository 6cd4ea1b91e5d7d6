package notify

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/skischool_office/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// messageSender часть *bot.Bot, нужная для отправки уведомлений
type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TelegramNotifier отправляет инструктору сообщение о новом заказе
type TelegramNotifier struct {
	sender messageSender
	logger *zap.Logger
}

// NewTelegramNotifier создаёт бота только для исходящих сообщений.
// getMe при старте пропускается, недоступный Telegram не мешает запуску сервиса.
func NewTelegramNotifier(token string, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{sender: b, logger: logger}, nil
}

// BookingCreated уведомляет инструктора; без chat id ничего не делает
func (n *TelegramNotifier) BookingCreated(ctx context.Context, instructor *model.Instructor, ticket *model.Ticket) error {
	if instructor.TelegramChatID == nil {
		n.logger.Debug("Instructor has no telegram chat, skipping notification",
			zap.String("instructor_id", instructor.ID))
		return nil
	}

	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    *instructor.TelegramChatID,
		Text:      BookingMessage(instructor, ticket),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	n.logger.Info("Instructor notified",
		zap.String("instructor_id", instructor.ID),
		zap.String("ticket_id", ticket.ID),
		zap.Int64("chat_id", *instructor.TelegramChatID))

	return nil
}

// NopNotifier используется, когда TELEGRAM_TOKEN не задан
type NopNotifier struct{}

func (NopNotifier) BookingCreated(context.Context, *model.Instructor, *model.Ticket) error {
	return nil
}
