package router

import (
	"github.com/iliyamo/mentor-session-booking/internal/handler"
	"github.com/iliyamo/mentor-session-booking/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterSlots registers availability endpoints under /v1.  Writing
// slots is restricted to the MENTOR role; browsing a mentor's slots is
// open to any authenticated user so mentees can pick a window before
// requesting a booking.
func RegisterSlots(e *echo.Echo, h *handler.SlotHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	mentor := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MENTOR"),
	)
	// Declare a new availability window for the authenticated mentor.
	mentor.POST("/slots", h.CreateSlot)
	// Delete an owned window.  Refused while active bookings reference it.
	mentor.DELETE("/slots/:id", h.DeleteSlot)

	browse := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MENTOR", "MENTEE"),
	)
	// List a mentor's declared windows ordered by start time.  Cached
	// after JWTAuth; the window list is the same for every caller.
	browse.GET("/slots/mentor/:mentor_id", h.ListMentorSlots, cache)
}
