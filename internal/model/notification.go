package model

import "time"

// Notification is an in-app message addressed to one user, stored
// in the `notifications` table.  Notifications are created as a
// side effect of booking creation and status transitions and are
// immutable after creation except for the read flag.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – recipient of the notification.
//  SenderID   – user whose action produced the notification.
//  Content    – free-text body shown to the recipient.
//  EntityType – type of the originating entity (e.g. "Booking").
//  EntityID   – identifier of the originating entity.
//  IsRead     – whether the recipient has consumed the notification.
//  CreatedAt  – creation timestamp.
type Notification struct {
	ID         uint64    // notifications.id
	UserID     uint64    // notifications.user_id
	SenderID   uint64    // notifications.sender_id
	Content    string    // notifications.content
	EntityType string    // notifications.entity_type
	EntityID   uint64    // notifications.entity_id
	IsRead     bool      // notifications.is_read
	CreatedAt  time.Time // notifications.created_at
}
