package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iCodeIN/vincent/internal/models"
	"github.com/iCodeIN/vincent/internal/repository"
)

type messageLinkRepository struct {
	db *sql.DB
}

// NewMessageLinkRepository creates a message link store backed by PostgreSQL.
func NewMessageLinkRepository(db *sql.DB) repository.MessageLinkRepository {
	return &messageLinkRepository{db: db}
}

func (r *messageLinkRepository) Create(ctx context.Context, link *models.MessageLink) error {
	query := `
		INSERT INTO message_links
			(subscriber_user_id, subscriber_chat_id, subscriber_message_id, admin_chat_id, admin_message_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		link.SubscriberUserID,
		link.SubscriberChatID,
		link.SubscriberMessageID,
		link.AdminChatID,
		link.AdminMessageID,
	).Scan(&link.ID)
	if err != nil {
		return &repository.StoreError{Op: "create message link", Link: link, Err: err}
	}

	return nil
}

func (r *messageLinkRepository) Find(ctx context.Context, chatID int64, messageID int, direction models.Direction) (*models.MessageLink, error) {
	// Each pair carries a unique index, so at most one row can match;
	// the ORDER BY pins the result should that ever change.
	var where string
	switch direction {
	case models.DirectionAdmin:
		where = "admin_chat_id = $1 AND admin_message_id = $2"
	case models.DirectionSubscriber:
		where = "subscriber_chat_id = $1 AND subscriber_message_id = $2"
	default:
		return nil, fmt.Errorf("unknown link direction %d", direction)
	}

	query := `
		SELECT id, subscriber_user_id, subscriber_chat_id, subscriber_message_id, admin_chat_id, admin_message_id
		FROM message_links
		WHERE ` + where + `
		ORDER BY id
		LIMIT 1`

	link := &models.MessageLink{}
	err := r.db.QueryRowContext(ctx, query, chatID, messageID).Scan(
		&link.ID,
		&link.SubscriberUserID,
		&link.SubscriberChatID,
		&link.SubscriberMessageID,
		&link.AdminChatID,
		&link.AdminMessageID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &repository.StoreError{
			Op:        fmt.Sprintf("find message link (%s)", direction),
			ChatID:    chatID,
			MessageID: messageID,
			Err:       err,
		}
	}

	return link, nil
}
