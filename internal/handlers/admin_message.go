package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/metrics"
	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

// AdminMessageHandler relays admin replies back to the subscriber the
// replied-to copy originated from. Admins act exclusively by replying; a
// reply to anything the bot never forwarded is dropped without a trace.
type AdminMessageHandler struct {
	api    API
	links  repository.MessageLinkRepository
	logger *logrus.Logger
}

// NewAdminMessageHandler creates a new AdminMessageHandler.
func NewAdminMessageHandler(api API, links repository.MessageLinkRepository, logger *logrus.Logger) *AdminMessageHandler {
	return &AdminMessageHandler{api: api, links: links, logger: logger}
}

// Handle copies the admin's reply into the resolved subscriber chat and
// records the new link so the subscriber can reply in turn.
func (h *AdminMessageHandler) Handle(ctx context.Context, update tgbotapi.Update) (bool, error) {
	message := update.Message
	if message == nil || message.IsCommand() {
		return false, nil
	}

	parent := message.ReplyToMessage
	if parent == nil {
		return true, nil
	}

	link, err := h.links.Find(ctx, parent.Chat.ID, parent.MessageID, models.DirectionAdmin)
	if err != nil {
		return true, fmt.Errorf("resolve replied-to copy: %w", err)
	}
	if link == nil {
		h.logger.WithFields(logrus.Fields{
			"chat_id":    parent.Chat.ID,
			"message_id": parent.MessageID,
		}).Debug("Admin reply to an unlinked message, dropping")
		return true, nil
	}

	cp := tgbotapi.NewCopyMessage(link.SubscriberChatID, link.AdminChatID, message.MessageID)
	cp.ReplyToMessageID = link.SubscriberMessageID

	copied, err := h.api.CopyMessage(cp)
	if err != nil {
		return true, fmt.Errorf("copy message to subscriber chat: %w", err)
	}

	reverse := &models.MessageLink{
		SubscriberUserID:    link.SubscriberUserID,
		SubscriberChatID:    link.SubscriberChatID,
		SubscriberMessageID: copied.MessageID,
		AdminChatID:         link.AdminChatID,
		AdminMessageID:      message.MessageID,
	}
	if err := h.links.Create(ctx, reverse); err != nil {
		return true, fmt.Errorf("save message link: %w", err)
	}

	metrics.RelayedMessages.WithLabelValues(metrics.DirectionAdminToSubscriber).Inc()
	h.logger.WithFields(logrus.Fields{
		"subscriber_user_id": link.SubscriberUserID,
		"message_id":         message.MessageID,
	}).Info("Forwarded admin reply")

	return true, nil
}
