package repository

import (
	"context"

	"github.com/iCodeIN/vincent/internal/models"
)

// UserRepository is the directory of every user the bot has ever seen.
type UserRepository interface {
	// Track upserts the identity: first sighting inserts the row, every
	// later sighting updates the mutable fields and updated_at. Safe to
	// call for every inbound update regardless of role.
	Track(ctx context.Context, user *models.User) error

	// IsBlocked reports the block flag for a known user. Unknown users
	// yield models.ErrUserNotFound (wrapped in a StoreError).
	IsBlocked(ctx context.Context, userID int64) (bool, error)

	// SetBlocked flips the block flag and reports whether the user
	// exists. An unknown user is a legitimate "false", not an error.
	SetBlocked(ctx context.Context, userID int64, blocked bool) (bool, error)

	// List returns one page of users under the filter. Pages are
	// 1-based; out-of-range pages come back empty with correct totals.
	List(ctx context.Context, page int, filter models.BlockFilter) (*models.UserInfoList, error)
}

// MessageLinkRepository is the append-only store of forward correspondences.
type MessageLinkRepository interface {
	// Create appends one link. Called only after the forward succeeded.
	Create(ctx context.Context, link *models.MessageLink) error

	// Find looks a link up by the (chat, message) pair on the side
	// selected by direction. Returns (nil, nil) when no link exists.
	Find(ctx context.Context, chatID int64, messageID int, direction models.Direction) (*models.MessageLink, error)
}
