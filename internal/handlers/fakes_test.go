package handlers

import (
	"context"
	"io"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

const testAdminChatID = int64(99)

// fakeAPI records outbound operations and hands out sequential message ids
// for copies.
type fakeAPI struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	copies   []tgbotapi.CopyMessageConfig

	nextCopyID int
	sendErr    error
	copyErr    error
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: 1}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error) {
	if f.copyErr != nil {
		return tgbotapi.MessageID{}, f.copyErr
	}
	f.copies = append(f.copies, config)
	f.nextCopyID++
	return tgbotapi.MessageID{MessageID: 500 + f.nextCopyID - 1}, nil
}

// memLinks is an in-memory MessageLinkRepository.
type memLinks struct {
	links     []*models.MessageLink
	createErr error
	findErr   error
}

func (m *memLinks) Create(ctx context.Context, link *models.MessageLink) error {
	if m.createErr != nil {
		return &repository.StoreError{Op: "create message link", Link: link, Err: m.createErr}
	}
	stored := *link
	stored.ID = int64(len(m.links) + 1)
	m.links = append(m.links, &stored)
	return nil
}

func (m *memLinks) Find(ctx context.Context, chatID int64, messageID int, direction models.Direction) (*models.MessageLink, error) {
	if m.findErr != nil {
		return nil, &repository.StoreError{Op: "find message link", ChatID: chatID, MessageID: messageID, Err: m.findErr}
	}
	for _, link := range m.links {
		switch direction {
		case models.DirectionAdmin:
			if link.AdminChatID == chatID && link.AdminMessageID == messageID {
				return link, nil
			}
		case models.DirectionSubscriber:
			if link.SubscriberChatID == chatID && link.SubscriberMessageID == messageID {
				return link, nil
			}
		}
	}
	return nil, nil
}

// memUsers is an in-memory UserRepository.
type memUsers struct {
	users   map[int64]*models.User
	order   []int64
	tracked int
}

func newMemUsers(users ...*models.User) *memUsers {
	m := &memUsers{users: make(map[int64]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
		m.order = append(m.order, u.ID)
	}
	return m
}

func (m *memUsers) Track(ctx context.Context, user *models.User) error {
	m.tracked++
	if existing, ok := m.users[user.ID]; ok {
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.Username = user.Username
		return nil
	}
	u := *user
	m.users[u.ID] = &u
	m.order = append(m.order, u.ID)
	return nil
}

func (m *memUsers) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	user, ok := m.users[userID]
	if !ok {
		return false, &repository.StoreError{Op: "check block state", UserID: userID, Err: models.ErrUserNotFound}
	}
	return user.IsBlocked, nil
}

func (m *memUsers) SetBlocked(ctx context.Context, userID int64, blocked bool) (bool, error) {
	user, ok := m.users[userID]
	if !ok {
		return false, nil
	}
	user.IsBlocked = blocked
	return true, nil
}

func (m *memUsers) List(ctx context.Context, page int, filter models.BlockFilter) (*models.UserInfoList, error) {
	var filtered []*models.User
	for _, id := range m.order {
		user := m.users[id]
		switch filter {
		case models.FilterBlocked:
			if !user.IsBlocked {
				continue
			}
		case models.FilterNotBlocked:
			if user.IsBlocked {
				continue
			}
		}
		filtered = append(filtered, user)
	}

	start := (page - 1) * models.ListPageSize
	end := start + models.ListPageSize
	var items []*models.User
	if start < len(filtered) {
		if end > len(filtered) {
			end = len(filtered)
		}
		items = filtered[start:end]
	}

	return &models.UserInfoList{
		Items:      items,
		Page:       page,
		TotalItems: len(filtered),
		Filter:     filter,
	}, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// subscriberMessage builds a plain text update from a 1:1 subscriber chat.
func subscriberMessage(userID int64, messageID int) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: messageID,
			From:      &tgbotapi.User{ID: userID, FirstName: "Sub", UserName: "sub"},
			Chat:      &tgbotapi.Chat{ID: userID, Type: "private"},
			Text:      "hello",
		},
	}
}

// adminReply builds an admin update replying to replyTo in the admin chat.
func adminReply(messageID, replyTo int) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: messageID,
			From:      &tgbotapi.User{ID: 1, FirstName: "Admin"},
			Chat:      &tgbotapi.Chat{ID: testAdminChatID},
			Text:      "reply",
			ReplyToMessage: &tgbotapi.Message{
				MessageID: replyTo,
				Chat:      &tgbotapi.Chat{ID: testAdminChatID},
			},
		},
	}
}

// command builds a command update in the given chat.
func command(chatID int64, messageID int, text string, replyTo *tgbotapi.Message) tgbotapi.Update {
	entityLen := len(text)
	if idx := strings.IndexByte(text, ' '); idx > 0 {
		entityLen = idx
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID:      messageID,
			From:           &tgbotapi.User{ID: chatID, FirstName: "Admin"},
			Chat:           &tgbotapi.Chat{ID: chatID},
			Text:           text,
			ReplyToMessage: replyTo,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: entityLen},
			},
		},
	}
}
