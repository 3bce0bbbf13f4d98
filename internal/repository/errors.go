package repository

import (
	"fmt"

	"github.com/iCodeIN/vincent/internal/models"
)

// StoreError is a failed store operation together with the context needed to
// log it meaningfully: the operation name, the offending key(s) and, for link
// creation, the full attempted link.
type StoreError struct {
	Op        string
	UserID    int64
	ChatID    int64
	MessageID int
	Link      *models.MessageLink
	Err       error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	switch {
	case e.Link != nil:
		return fmt.Sprintf("%s: %v (link=%+v)", e.Op, e.Err, *e.Link)
	case e.ChatID != 0 || e.MessageID != 0:
		return fmt.Sprintf("%s: %v (chat_id=%d, message_id=%d)", e.Op, e.Err, e.ChatID, e.MessageID)
	case e.UserID != 0:
		return fmt.Sprintf("%s: %v (user_id=%d)", e.Op, e.Err, e.UserID)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *StoreError) Unwrap() error {
	return e.Err
}
