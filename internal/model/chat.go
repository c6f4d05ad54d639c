package model

import "time"

// ChatGroup is a named conversation stored in the `chat_groups`
// table.  Membership lives in `chat_group_members`.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the group.
//  Members   – user ids belonging to the group.
//  CreatedAt – creation timestamp.
type ChatGroup struct {
	ID        uint64    // chat_groups.id
	Name      string    // chat_groups.name
	Members   []uint64  // chat_group_members.user_id
	CreatedAt time.Time // chat_groups.created_at
}

// Message is a chat message persisted in the `messages` table and
// relayed to the group's room after the write commits.
//
// Fields:
//  ID        – primary key identifier.
//  GroupID   – conversation the message belongs to.
//  SenderID  – author of the message.
//  Content   – message body.
//  CreatedAt – creation timestamp.
type Message struct {
	ID        uint64    // messages.id
	GroupID   uint64    // messages.group_id
	SenderID  uint64    // messages.sender_id
	Content   string    // messages.content
	CreatedAt time.Time // messages.created_at
}
