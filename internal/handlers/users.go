package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

// UsersHandler handles /users [blocked|!blocked]: page 1 of the directory
// listing with pagination controls.
type UsersHandler struct {
	api    API
	users  repository.UserRepository
	logger *logrus.Logger
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(api API, users repository.UserRepository, logger *logrus.Logger) *UsersHandler {
	return &UsersHandler{api: api, users: users, logger: logger}
}

// Handle processes the /users command. An unknown filter token becomes a
// user-visible correction, not a handler error.
func (h *UsersHandler) Handle(ctx context.Context, update tgbotapi.Update) (bool, error) {
	message := update.Message
	if message == nil || !message.IsCommand() || message.Command() != "users" {
		return false, nil
	}

	filter, err := models.ParseBlockFilter(strings.TrimSpace(message.CommandArguments()))
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, err.Error())
		if _, err := h.api.Send(msg); err != nil {
			return true, fmt.Errorf("send filter error: %w", err)
		}
		return true, nil
	}

	list, err := h.users.List(ctx, 1, filter)
	if err != nil {
		return true, fmt.Errorf("list users: %w", err)
	}

	keyboard, err := pageKeyboard(list)
	if err != nil {
		return true, fmt.Errorf("build pagination keyboard: %w", err)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, renderUserList(list))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := h.api.Send(msg); err != nil {
		return true, fmt.Errorf("send user list: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"filter":      filter,
		"total_items": list.TotalItems,
	}).Info("Rendered user listing")

	return true, nil
}

// PageCallbackHandler re-renders a user listing in place when a pagination
// control fires. The page number and active filter round-trip through the
// callback payload, so no listing state lives on the server.
type PageCallbackHandler struct {
	api    API
	users  repository.UserRepository
	logger *logrus.Logger
}

// NewPageCallbackHandler creates a new PageCallbackHandler.
func NewPageCallbackHandler(api API, users repository.UserRepository, logger *logrus.Logger) *PageCallbackHandler {
	return &PageCallbackHandler{api: api, users: users, logger: logger}
}

// Handle processes a page-changed callback query.
func (h *PageCallbackHandler) Handle(ctx context.Context, update tgbotapi.Update) (bool, error) {
	query := update.CallbackQuery
	if query == nil {
		return false, nil
	}

	page, ok := decodePage(query.Data)
	if !ok {
		return false, nil
	}
	if query.Message == nil {
		h.logger.WithFields(logrus.Fields{
			"callback_id": query.ID,
		}).Warn("Page callback without a message, ignoring")
		return true, nil
	}

	list, err := h.users.List(ctx, page.Number, page.Filter)
	if err != nil {
		return true, fmt.Errorf("list users: %w", err)
	}

	keyboard, err := pageKeyboard(list)
	if err != nil {
		return true, fmt.Errorf("build pagination keyboard: %w", err)
	}

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, renderUserList(list))
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = &keyboard
	if _, err := h.api.Send(edit); err != nil {
		return true, fmt.Errorf("edit user list: %w", err)
	}

	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		return true, fmt.Errorf("answer callback query: %w", err)
	}

	return true, nil
}

// pagePayload is the opaque state carried by every pagination control:
// requested page plus the active filter, JSON-encoded into callback data.
type pagePayload struct {
	Number int                `json:"number"`
	Filter models.BlockFilter `json:"block_filter,omitempty"`
}

func encodePage(number int, filter models.BlockFilter) (string, error) {
	data, err := json.Marshal(pagePayload{Number: number, Filter: filter})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodePage parses callback data issued by pageKeyboard. A payload this
// bot never issued reports ok=false so the update can fall through.
func decodePage(data string) (pagePayload, bool) {
	var page pagePayload
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return pagePayload{}, false
	}
	if page.Number < 1 {
		return pagePayload{}, false
	}
	if page.Filter == "" {
		page.Filter = models.FilterAll
	}
	if !page.Filter.Valid() {
		return pagePayload{}, false
	}
	return page, true
}

// pageKeyboard builds one row of pagination controls:
//
//	<< < current/total (items) > >>
//
// First/previous appear only when there is somewhere to go back to,
// next/last mirror them on the other edge.
func pageKeyboard(list *models.UserInfoList) (tgbotapi.InlineKeyboardMarkup, error) {
	current := list.Page
	total := list.TotalPages()

	button := func(label string, page int) (tgbotapi.InlineKeyboardButton, error) {
		data, err := encodePage(page, list.Filter)
		if err != nil {
			return tgbotapi.InlineKeyboardButton{}, err
		}
		return tgbotapi.NewInlineKeyboardButtonData(label, data), nil
	}

	var row []tgbotapi.InlineKeyboardButton
	appendButton := func(label string, page int) error {
		b, err := button(label, page)
		if err != nil {
			return err
		}
		row = append(row, b)
		return nil
	}

	if current != 1 {
		if err := appendButton("<<", 1); err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
	}
	if current > 2 {
		if err := appendButton("<", current-1); err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
	}
	counter := fmt.Sprintf("%d/%d (%d)", current, total, list.TotalItems)
	if err := appendButton(counter, current); err != nil {
		return tgbotapi.InlineKeyboardMarkup{}, err
	}
	if current < total-1 {
		if err := appendButton(">", current+1); err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
	}
	if current < total {
		if err := appendButton(">>", total); err != nil {
			return tgbotapi.InlineKeyboardMarkup{}, err
		}
	}

	return tgbotapi.NewInlineKeyboardMarkup(row), nil
}

// renderUserList renders one listing page as HTML.
func renderUserList(list *models.UserInfoList) string {
	if len(list.Items) == 0 {
		return "No users found"
	}

	var b strings.Builder
	for _, user := range list.Items {
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, user.ProfileURL(), html.EscapeString(user.FullName()))
		if user.Username != "" {
			b.WriteString(" @" + user.Username)
		}
		fmt.Fprintf(&b, " [%d]", user.ID)
		if user.IsBlocked {
			b.WriteString(" (blocked)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
