package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/metrics"
	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

// SubscriberMessageHandler copies every plain subscriber message into the
// admin chat and records the link that makes reply threading work.
type SubscriberMessageHandler struct {
	api         API
	links       repository.MessageLinkRepository
	adminChatID int64
	logger      *logrus.Logger
}

// NewSubscriberMessageHandler creates a new SubscriberMessageHandler.
func NewSubscriberMessageHandler(api API, links repository.MessageLinkRepository, adminChatID int64, logger *logrus.Logger) *SubscriberMessageHandler {
	return &SubscriberMessageHandler{
		api:         api,
		links:       links,
		adminChatID: adminChatID,
		logger:      logger,
	}
}

// Handle forwards the message. Sequence: resolve the thread parent, copy
// into the admin chat, then persist the link. A link is written only after
// the copy succeeded; if persisting fails the message is still delivered,
// only threading for it is lost.
func (h *SubscriberMessageHandler) Handle(ctx context.Context, update tgbotapi.Update) (bool, error) {
	message := update.Message
	if message == nil || message.IsCommand() || message.From == nil {
		return false, nil
	}
	// Only the 1:1 conversation with the sender is relayed.
	if !message.Chat.IsPrivate() {
		return false, nil
	}

	cp := tgbotapi.NewCopyMessage(h.adminChatID, message.Chat.ID, message.MessageID)
	cp.ReplyMarkup = profileKeyboard(message.From)

	if parent := message.ReplyToMessage; parent != nil {
		link, err := h.links.Find(ctx, parent.Chat.ID, parent.MessageID, models.DirectionSubscriber)
		if err != nil {
			return true, fmt.Errorf("resolve thread parent: %w", err)
		}
		// A link recorded against a different admin chat comes from a
		// stale configuration and must not cross-wire threads.
		if link != nil && link.AdminChatID == h.adminChatID {
			cp.ReplyToMessageID = link.AdminMessageID
		}
	}

	copied, err := h.api.CopyMessage(cp)
	if err != nil {
		return true, fmt.Errorf("copy message to admin chat: %w", err)
	}

	link := &models.MessageLink{
		SubscriberUserID:    message.From.ID,
		SubscriberChatID:    message.Chat.ID,
		SubscriberMessageID: message.MessageID,
		AdminChatID:         h.adminChatID,
		AdminMessageID:      copied.MessageID,
	}
	if err := h.links.Create(ctx, link); err != nil {
		// The copy is already delivered; only threading for this one
		// message is lost.
		return true, fmt.Errorf("save message link: %w", err)
	}

	metrics.RelayedMessages.WithLabelValues(metrics.DirectionSubscriberToAdmin).Inc()
	h.logger.WithFields(logrus.Fields{
		"user_id":          message.From.ID,
		"message_id":       message.MessageID,
		"admin_message_id": copied.MessageID,
	}).Info("Forwarded subscriber message")

	return true, nil
}

// profileKeyboard builds the inline control pointing at the sender's
// profile: t.me for public usernames, the tg:// deep link otherwise.
func profileKeyboard(user *tgbotapi.User) tgbotapi.InlineKeyboardMarkup {
	sender := models.User{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.UserName,
	}
	label := strings.TrimSpace(sender.FullName())
	if label == "" {
		label = sender.ProfileURL()
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(label, sender.ProfileURL()),
		),
	)
}
