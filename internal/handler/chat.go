package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mentor-session-booking/internal/model"
	"github.com/iliyamo/mentor-session-booking/internal/relay"
	"github.com/iliyamo/mentor-session-booking/internal/repository"
)

// ChatHandler serves chat groups and messages.  Durable writes go
// through the repository; each persisted message is additionally
// fanned out over the relay so connected clients see it without
// polling.  Relay failures are logged by the caller and never fail
// the request.
type ChatHandler struct {
	Chats *repository.ChatRepo
	Relay *relay.Relay
}

// NewChatHandler constructs a ChatHandler.  The repository must be
// non-nil; the relay may be disabled but not nil.
func NewChatHandler(chats *repository.ChatRepo, r *relay.Relay) *ChatHandler {
	if chats == nil || r == nil {
		panic("nil dependency passed to NewChatHandler")
	}
	return &ChatHandler{Chats: chats, Relay: r}
}

type createGroupReq struct {
	Name    string   `json:"name"`
	Members []uint64 `json:"members"`
}

type sendMessageReq struct {
	Content string `json:"content"`
}

type groupResp struct {
	ID      uint64   `json:"id"`
	Name    string   `json:"name"`
	Members []uint64 `json:"members"`
}

type messageResp struct {
	ID        uint64 `json:"id"`
	GroupID   uint64 `json:"group_id"`
	SenderID  uint64 `json:"sender_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func toMessageResp(m model.Message) messageResp {
	return messageResp{
		ID:        m.ID,
		GroupID:   m.GroupID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateGroup handles POST /v1/chat/groups.  The caller is always a
// member of the group they create; duplicate member IDs collapse.
func (h *ChatHandler) CreateGroup(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createGroupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	members := make([]uint64, 0, len(req.Members)+1)
	seen := map[uint64]bool{}
	for _, id := range append(req.Members, userID) {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}

	ctx := c.Request().Context()
	tx, err := h.Chats.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	g := model.ChatGroup{Name: req.Name, Members: members}
	if err := h.Chats.CreateGroupTx(ctx, tx, &g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create group"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusCreated, groupResp{ID: g.ID, Name: g.Name, Members: g.Members})
}

// ListGroups handles GET /v1/chat/groups for the authenticated user.
func (h *ChatHandler) ListGroups(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	groups, err := h.Chats.ListGroupsByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load groups"})
	}
	items := make([]groupResp, 0, len(groups))
	for _, g := range groups {
		items = append(items, groupResp{ID: g.ID, Name: g.Name, Members: g.Members})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// SendMessage handles POST /v1/chat/groups/:id/messages.  Membership
// is checked before the write; the message is persisted first and
// then pushed to the room channel.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || groupID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid group id"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content is required"})
	}

	ctx := c.Request().Context()
	member, err := h.Chats.IsMember(ctx, groupID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check membership"})
	}
	if !member {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a member of this group"})
	}

	m := model.Message{GroupID: groupID, SenderID: userID, Content: req.Content}
	if err := h.Chats.CreateMessage(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save message"})
	}

	if err := h.Relay.Publish(ctx, groupID, toMessageResp(m)); err != nil {
		c.Logger().Warnf("chat relay publish failed: %v", err)
	}

	return c.JSON(http.StatusCreated, toMessageResp(m))
}

// StreamGroupMessages handles GET /v1/chat/groups/:id/stream.  It
// subscribes to the group's room channel and forwards published
// messages to the client as server-sent events until the client
// disconnects.  Requires the realtime tier; returns 503 when Redis
// is not configured.
func (h *ChatHandler) StreamGroupMessages(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || groupID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid group id"})
	}
	if !h.Relay.Enabled() {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "realtime channel unavailable"})
	}

	ctx := c.Request().Context()
	member, err := h.Chats.IsMember(ctx, groupID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check membership"})
	}
	if !member {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a member of this group"})
	}

	sub := h.Relay.Subscribe(ctx, groupID)
	defer sub.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if _, err := res.Write([]byte("data: " + msg.Payload + "\n\n")); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

// ListGroupMessages handles GET /v1/chat/groups/:id/messages, oldest
// first.  Only members may read the history.
func (h *ChatHandler) ListGroupMessages(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || groupID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid group id"})
	}
	ctx := c.Request().Context()
	member, err := h.Chats.IsMember(ctx, groupID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check membership"})
	}
	if !member {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a member of this group"})
	}
	messages, err := h.Chats.ListMessagesByGroup(ctx, groupID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load messages"})
	}
	items := make([]messageResp, 0, len(messages))
	for _, m := range messages {
		items = append(items, toMessageResp(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
