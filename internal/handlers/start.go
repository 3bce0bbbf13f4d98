package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// StartHandler greets a subscriber who sent /start.
type StartHandler struct {
	logger *logrus.Logger
	api    API
}

// NewStartHandler creates a new start command handler
func NewStartHandler(api API, logger *logrus.Logger) *StartHandler {
	return &StartHandler{api: api, logger: logger}
}

// Handle processes the /start command.
func (h *StartHandler) Handle(_ context.Context, update tgbotapi.Update) (bool, error) {
	message := update.Message
	if message == nil || !message.IsCommand() || message.Command() != "start" {
		return false, nil
	}

	text := "Hi! Write me anything and I will pass it on. " +
		"Replies will arrive right here."

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	if _, err := h.api.Send(msg); err != nil {
		return true, fmt.Errorf("send start message: %w", err)
	}

	fields := logrus.Fields{"chat_id": message.Chat.ID}
	if message.From != nil {
		fields["user_id"] = message.From.ID
	}
	h.logger.WithFields(fields).Info("Sent start message")

	return true, nil
}
