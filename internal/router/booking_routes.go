package router

import (
	"github.com/iliyamo/mentor-session-booking/internal/handler"
	"github.com/iliyamo/mentor-session-booking/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterBookings registers the booking engine's endpoints under /v1.
// All routes require a valid JWT; both roles may create bookings and
// act on bookings they participate in.  Participant checks happen in
// the handlers because they depend on the booking row itself.  The
// cache middleware runs after JWTAuth and only on the shared list
// and detail reads; personal and participant-gated reads stay
// uncached.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("MENTOR", "MENTEE"),
	)
	// Create a PENDING booking on a mentor slot.
	g.POST("/bookings", h.CreateBooking)
	// List every booking, newest first.
	g.GET("/bookings", h.ListBookings, cache)
	// Retrieve a single booking with its participants.
	g.GET("/bookings/:id", h.GetBooking, cache)
	// List bookings a given user participates in.  Empty result is 200.
	g.GET("/bookings/user/:user_id", h.ListBookingsByUser, cache)
	// Shortcut for the authenticated user's own bookings.
	g.GET("/my-bookings", h.ListMyBookings)
	// Audit a booking's settlement records.  Participants only.
	g.GET("/bookings/:id/transactions", h.ListBookingTransactions)
	// Accept or cancel a booking.  A transition to ACCEPTED settles the
	// payout and the platform fee in the same transaction.
	g.PUT("/bookings/:id/status", h.UpdateStatus)
	// Remove a booking record.  Settlement history is kept.
	g.DELETE("/bookings/:id", h.DeleteBooking)
}
