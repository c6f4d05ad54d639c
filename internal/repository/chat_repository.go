package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/mentor-session-booking/internal/model"
)

// ChatRepo provides access to chat groups, their memberships and
// message history.  Message fan-out to connected clients is the
// relay's job; this repository only covers the durable side.
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo returns a new ChatRepo bound to the given database.
func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *ChatRepo) DB() *sql.DB { return r.db }

// CreateGroupTx inserts a chat group and its member rows within the
// caller's transaction, populating the generated ID.
func (r *ChatRepo) CreateGroupTx(ctx context.Context, tx *sql.Tx, g *model.ChatGroup) error {
	res, err := tx.ExecContext(ctx, `INSERT INTO chat_groups (name) VALUES (?)`, g.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	if len(g.Members) == 0 {
		return nil
	}
	query := `INSERT INTO chat_group_members (group_id, user_id) VALUES `
	args := make([]interface{}, 0, len(g.Members)*2)
	for i, uid := range g.Members {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, g.ID, uid)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// ListGroupsByUser returns the groups the user belongs to, newest
// first, with member lists populated.
func (r *ChatRepo) ListGroupsByUser(ctx context.Context, userID uint64) ([]model.ChatGroup, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.created_at
		 FROM chat_groups g
		 JOIN chat_group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	groups := make([]model.ChatGroup, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var g model.ChatGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}
	for i := range groups {
		mrows, err := r.db.QueryContext(ctx,
			`SELECT user_id FROM chat_group_members WHERE group_id = ?`, groups[i].ID)
		if err != nil {
			return nil, err
		}
		for mrows.Next() {
			var uid uint64
			if err := mrows.Scan(&uid); err != nil {
				mrows.Close()
				return nil, err
			}
			groups[i].Members = append(groups[i].Members, uid)
		}
		if err := mrows.Err(); err != nil {
			mrows.Close()
			return nil, err
		}
		mrows.Close()
	}
	return groups, nil
}

// IsMember reports whether the user belongs to the group.
func (r *ChatRepo) IsMember(ctx context.Context, groupID, userID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM chat_group_members WHERE group_id = ? AND user_id = ? LIMIT 1`,
		groupID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateMessage persists a chat message and populates the generated
// ID and creation timestamp.
func (r *ChatRepo) CreateMessage(ctx context.Context, m *model.Message) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (group_id, sender_id, content) VALUES (?, ?, ?)`,
		m.GroupID, m.SenderID, m.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM messages WHERE id = ?`, m.ID).Scan(&m.CreatedAt)
}

// ListMessagesByGroup returns a group's messages oldest first so
// clients can render history top-down.
func (r *ChatRepo) ListMessagesByGroup(ctx context.Context, groupID uint64) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, sender_id, content, created_at
		 FROM messages WHERE group_id = ? ORDER BY created_at`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
