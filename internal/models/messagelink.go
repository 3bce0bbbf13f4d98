package models

// Direction selects which side of a message link a lookup is keyed by.
type Direction int

const (
	// DirectionAdmin matches the admin-side (chat, message) pair.
	DirectionAdmin Direction = iota
	// DirectionSubscriber matches the subscriber-side (chat, message) pair.
	DirectionSubscriber
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirectionAdmin:
		return "admin"
	case DirectionSubscriber:
		return "subscriber"
	default:
		return "unknown"
	}
}

// MessageLink records the correspondence between a subscriber message and its
// forwarded copy in the admin chat. One row per completed forward,
// append-only.
type MessageLink struct {
	ID                  int64 `json:"id" db:"id"`
	SubscriberUserID    int64 `json:"subscriber_user_id" db:"subscriber_user_id"`
	SubscriberChatID    int64 `json:"subscriber_chat_id" db:"subscriber_chat_id"`
	SubscriberMessageID int   `json:"subscriber_message_id" db:"subscriber_message_id"`
	AdminChatID         int64 `json:"admin_chat_id" db:"admin_chat_id"`
	AdminMessageID      int   `json:"admin_message_id" db:"admin_message_id"`
}
