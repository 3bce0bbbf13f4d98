package access

import (
	"context"
	"errors"
	"io"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

const adminChatID = int64(99)

// directoryStub answers IsBlocked from a fixed map; identities absent from
// the map are unknown. The other UserRepository methods are not used by the
// policies.
type directoryStub struct {
	blocked map[int64]bool
	err     error
}

func (d *directoryStub) Track(ctx context.Context, user *models.User) error { return nil }

func (d *directoryStub) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	blocked, ok := d.blocked[userID]
	if !ok {
		return false, &repository.StoreError{Op: "check block state", UserID: userID, Err: models.ErrUserNotFound}
	}
	return blocked, nil
}

func (d *directoryStub) SetBlocked(ctx context.Context, userID int64, blocked bool) (bool, error) {
	return false, nil
}

func (d *directoryStub) List(ctx context.Context, page int, filter models.BlockFilter) (*models.UserInfoList, error) {
	return nil, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func messageUpdate(chatID, userID int64) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: userID, FirstName: "test"},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      "hello",
		},
	}
}

func TestAdminPolicy(t *testing.T) {
	policy := NewAdminPolicy(adminChatID)
	ctx := context.Background()

	if !policy.IsGranted(ctx, messageUpdate(adminChatID, 1)) {
		t.Error("admin chat should be granted")
	}
	if policy.IsGranted(ctx, messageUpdate(7, 7)) {
		t.Error("subscriber chat should be denied")
	}
	if policy.IsGranted(ctx, tgbotapi.Update{}) {
		t.Error("update without a chat should be denied")
	}
}

func TestSubscriberPolicyDeniesAdminChat(t *testing.T) {
	// The admin gate short-circuits: the directory must not be consulted.
	dir := &directoryStub{err: errors.New("must not be called")}
	policy := NewSubscriberPolicy(dir, adminChatID, true, quietLogger())

	if policy.IsGranted(context.Background(), messageUpdate(adminChatID, 1)) {
		t.Error("admin chat must never reach subscriber handlers")
	}
}

func TestSubscriberPolicyBlockState(t *testing.T) {
	dir := &directoryStub{blocked: map[int64]bool{7: true, 8: false}}
	policy := NewSubscriberPolicy(dir, adminChatID, true, quietLogger())
	ctx := context.Background()

	if policy.IsGranted(ctx, messageUpdate(7, 7)) {
		t.Error("blocked user should be denied")
	}
	if !policy.IsGranted(ctx, messageUpdate(8, 8)) {
		t.Error("unblocked user should be granted")
	}
}

func TestSubscriberPolicyUnknownUserAllowed(t *testing.T) {
	dir := &directoryStub{blocked: map[int64]bool{}}
	policy := NewSubscriberPolicy(dir, adminChatID, true, quietLogger())

	if !policy.IsGranted(context.Background(), messageUpdate(9, 9)) {
		t.Error("user without a directory record should be granted")
	}
}

func TestSubscriberPolicyNoUserAllowed(t *testing.T) {
	dir := &directoryStub{blocked: map[int64]bool{}}
	policy := NewSubscriberPolicy(dir, adminChatID, true, quietLogger())

	update := tgbotapi.Update{
		Message: &tgbotapi.Message{MessageID: 1, Chat: &tgbotapi.Chat{ID: 5}},
	}
	if !policy.IsGranted(context.Background(), update) {
		t.Error("update without a resolvable user should be granted")
	}
}

func TestSubscriberPolicyLookupFailure(t *testing.T) {
	dir := &directoryStub{err: errors.New("connection refused")}

	open := NewSubscriberPolicy(dir, adminChatID, true, quietLogger())
	if !open.IsGranted(context.Background(), messageUpdate(7, 7)) {
		t.Error("fail-open policy should grant on lookup failure")
	}

	closed := NewSubscriberPolicy(dir, adminChatID, false, quietLogger())
	if closed.IsGranted(context.Background(), messageUpdate(7, 7)) {
		t.Error("fail-closed policy should deny on lookup failure")
	}
}
