package access

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

// Policy decides whether an inbound update may reach a handler chain.
type Policy interface {
	IsGranted(ctx context.Context, update tgbotapi.Update) bool
}

// AdminPolicy grants access to the configured admin chat and nobody else.
// It never consults the directory.
type AdminPolicy struct {
	adminChatID int64
}

// NewAdminPolicy creates an AdminPolicy for the given admin chat.
func NewAdminPolicy(adminChatID int64) *AdminPolicy {
	return &AdminPolicy{adminChatID: adminChatID}
}

// IsGranted implements Policy.
func (p *AdminPolicy) IsGranted(_ context.Context, update tgbotapi.Update) bool {
	chat := update.FromChat()
	return chat != nil && chat.ID == p.adminChatID
}

// SubscriberPolicy denies the admin chat outright and everyone flagged
// blocked in the directory. Updates without a resolvable user, users the
// directory has never seen, and — depending on allowOnError — directory
// failures are all admitted.
type SubscriberPolicy struct {
	users        repository.UserRepository
	adminChatID  int64
	allowOnError bool
	logger       *logrus.Logger
}

// NewSubscriberPolicy creates a SubscriberPolicy. allowOnError selects the
// verdict when the block lookup itself fails.
func NewSubscriberPolicy(users repository.UserRepository, adminChatID int64, allowOnError bool, logger *logrus.Logger) *SubscriberPolicy {
	return &SubscriberPolicy{
		users:        users,
		adminChatID:  adminChatID,
		allowOnError: allowOnError,
		logger:       logger,
	}
}

// IsGranted implements Policy. The admin gate runs first: the admin chat is
// never subjected to the block lookup.
func (p *SubscriberPolicy) IsGranted(ctx context.Context, update tgbotapi.Update) bool {
	if chat := update.FromChat(); chat != nil && chat.ID == p.adminChatID {
		// admins have no access to subscriber handlers
		return false
	}

	user := update.SentFrom()
	if user == nil {
		return true
	}

	blocked, err := p.users.IsBlocked(ctx, user.ID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			// Nothing on record yet; the tracking middleware will
			// create the row.
			return true
		}
		p.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
		}).WithError(err).Warn("Block lookup failed, applying on-error default")
		return p.allowOnError
	}

	return !blocked
}
