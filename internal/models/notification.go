package models

import "time"

// Notification kinds emitted by the feed subsystem
const (
	NotificationKindReaction = "reaction"
	NotificationKindComment  = "comment"
)

// Notification is a write-only record addressed to an identity-provider
// user. The read/consumption lifecycle belongs to the notifications
// subsystem and is out of scope here.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"` // identity-provider user id of the recipient
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind" gorm:"size:30;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
