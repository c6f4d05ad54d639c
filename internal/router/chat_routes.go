package router

import (
	"github.com/iliyamo/mentor-session-booking/internal/handler"
	"github.com/iliyamo/mentor-session-booking/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterChat registers chat group and message endpoints under /v1.
// Every route requires a valid JWT; membership checks run in the
// handlers against chat_group_members.
func RegisterChat(e *echo.Echo, h *handler.ChatHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MENTOR", "MENTEE"),
	)
	// Create a chat group; the caller is always added as a member.
	g.POST("/chat/groups", h.CreateGroup)
	// List the caller's groups, newest first.
	g.GET("/chat/groups", h.ListGroups)
	// Post a message to a group the caller belongs to.
	g.POST("/chat/groups/:id/messages", h.SendMessage)
	// Read a group's message history, oldest first.
	g.GET("/chat/groups/:id/messages", h.ListGroupMessages)
	// Live message feed over server-sent events.
	g.GET("/chat/groups/:id/stream", h.StreamGroupMessages)
}

// RegisterNotifications registers the notification feed endpoints
// under /v1 for both roles.
func RegisterNotifications(e *echo.Echo, h *handler.NotificationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MENTOR", "MENTEE"),
	)
	// List the caller's notifications, newest first.
	g.GET("/notifications", h.ListNotifications)
	// Mark one of the caller's notifications as read.
	g.PUT("/notifications/:id/read", h.MarkRead)
}
