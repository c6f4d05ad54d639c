package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mentor-session-booking/internal/model"
	"github.com/iliyamo/mentor-session-booking/internal/repository"
)

// NotificationHandler serves a user's in-app notification feed.
// Writes happen elsewhere, inside the booking engine's transactions;
// this handler only reads and marks.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

// NewNotificationHandler constructs a NotificationHandler.  The
// repository must be non-nil.
func NewNotificationHandler(notifications *repository.NotificationRepo) *NotificationHandler {
	if notifications == nil {
		panic("nil repository passed to NewNotificationHandler")
	}
	return &NotificationHandler{Notifications: notifications}
}

type notificationResp struct {
	ID         uint64 `json:"id"`
	SenderID   uint64 `json:"sender_id"`
	Content    string `json:"content"`
	EntityType string `json:"entity_type"`
	EntityID   uint64 `json:"entity_id"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  string `json:"created_at"`
}

func toNotificationResp(n model.Notification) notificationResp {
	return notificationResp{
		ID:         n.ID,
		SenderID:   n.SenderID,
		Content:    n.Content,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListNotifications handles GET /v1/notifications for the
// authenticated user, newest first.
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Notifications.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load notifications"})
	}
	items := make([]notificationResp, 0, len(list))
	for _, n := range list {
		items = append(items, toNotificationResp(n))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// MarkRead handles PUT /v1/notifications/:id/read.  Only the
// recipient may mark their notification.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
	}
	switch err := h.Notifications.MarkRead(c.Request().Context(), id, userID); {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "notification marked as read"})
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update notification"})
	}
}
