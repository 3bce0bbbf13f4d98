package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

const (
	messageOK       = "OK"
	messageNotFound = "Not found"
)

// BlockHandler handles /block. The command is valid only as a reply to a
// forwarded subscriber message; the target is resolved through the link.
type BlockHandler struct {
	api    API
	links  repository.MessageLinkRepository
	users  repository.UserRepository
	logger *logrus.Logger
}

// NewBlockHandler creates a new BlockHandler.
func NewBlockHandler(api API, links repository.MessageLinkRepository, users repository.UserRepository, logger *logrus.Logger) *BlockHandler {
	return &BlockHandler{api: api, links: links, users: users, logger: logger}
}

// Handle processes the /block command.
func (h *BlockHandler) Handle(ctx context.Context, update tgbotapi.Update) (bool, error) {
	message := update.Message
	if message == nil || !message.IsCommand() || message.Command() != "block" {
		return false, nil
	}

	text := messageNotFound
	if parent := message.ReplyToMessage; parent != nil {
		link, err := h.links.Find(ctx, parent.Chat.ID, parent.MessageID, models.DirectionAdmin)
		if err != nil {
			return true, fmt.Errorf("resolve replied-to copy: %w", err)
		}
		if link != nil {
			affected, err := h.users.SetBlocked(ctx, link.SubscriberUserID, true)
			if err != nil {
				return true, fmt.Errorf("block user: %w", err)
			}
			if affected {
				text = messageOK
				h.logger.WithFields(logrus.Fields{
					"user_id": link.SubscriberUserID,
				}).Info("Blocked user")
			}
		}
	}

	if err := h.reply(message, text); err != nil {
		return true, err
	}
	return true, nil
}

func (h *BlockHandler) reply(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	if _, err := h.api.Send(msg); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// UnblockHandler handles /unblock <user_id>. A blocked user's messages are
// no longer forwarded, so there is nothing to reply to; the target comes as
// a numeric argument instead.
type UnblockHandler struct {
	api    API
	users  repository.UserRepository
	logger *logrus.Logger
}

// NewUnblockHandler creates a new UnblockHandler.
func NewUnblockHandler(api API, users repository.UserRepository, logger *logrus.Logger) *UnblockHandler {
	return &UnblockHandler{api: api, users: users, logger: logger}
}

// Handle processes the /unblock command. Argument problems turn into a
// short correction prompt, never into a handler error.
func (h *UnblockHandler) Handle(ctx context.Context, update tgbotapi.Update) (bool, error) {
	message := update.Message
	if message == nil || !message.IsCommand() || message.Command() != "unblock" {
		return false, nil
	}

	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		return true, h.reply(message, "User ID is required")
	}

	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return true, h.reply(message, "Invalid User ID")
	}

	affected, err := h.users.SetBlocked(ctx, userID, false)
	if err != nil {
		return true, fmt.Errorf("unblock user: %w", err)
	}

	text := messageNotFound
	if affected {
		text = messageOK
		h.logger.WithFields(logrus.Fields{
			"user_id": userID,
		}).Info("Unblocked user")
	}
	return true, h.reply(message, text)
}

func (h *UnblockHandler) reply(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	if _, err := h.api.Send(msg); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
