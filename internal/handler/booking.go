package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mentor-session-booking/internal/booking"
	"github.com/iliyamo/mentor-session-booking/internal/model"
	"github.com/iliyamo/mentor-session-booking/internal/queue"
	"github.com/iliyamo/mentor-session-booking/internal/repository"
	queue_publisher "github.com/iliyamo/mentor-session-booking/internal/service"
)

// BookingHandler groups the repositories of the booking engine.  All
// methods assume that JWT authentication has already been performed
// by middleware.  Methods may return 401 Unauthorized if the user ID
// cannot be extracted from the context.  Critical DB operations run
// inside a transaction so the overlap probe, the booking write and
// the settlement writes are atomic; the original design ran them as
// independent round trips and could race past the overlap check.
type BookingHandler struct {
	BookingRepo      *repository.BookingRepo      // access to bookings and booking_participants
	SlotRepo         *repository.SlotRepo         // access to free_time_slots for existence checks
	NotificationRepo *repository.NotificationRepo // access to notifications for side-effect writes
	TransactionRepo  *repository.TransactionRepo  // access to transactions and admin_revenues
	UserRepo         *repository.UserRepo         // access to users for notification texts
	AMQPURL          string                       // broker URL for lifecycle events (empty uses the local default)
}

// NewBookingHandler constructs a new BookingHandler with the provided
// repositories.  All repositories must be non-nil.
func NewBookingHandler(bookingRepo *repository.BookingRepo, slotRepo *repository.SlotRepo, notificationRepo *repository.NotificationRepo, transactionRepo *repository.TransactionRepo, userRepo *repository.UserRepo, amqpURL string) *BookingHandler {
	if bookingRepo == nil || slotRepo == nil || notificationRepo == nil || transactionRepo == nil || userRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{
		BookingRepo:      bookingRepo,
		SlotRepo:         slotRepo,
		NotificationRepo: notificationRepo,
		TransactionRepo:  transactionRepo,
		UserRepo:         userRepo,
		AMQPURL:          amqpURL,
	}
}

// ----- DTOs -----

type createBookingReq struct {
	Participants []uint64 `json:"participants"`
	SlotID       uint64   `json:"slot_id"`
	AmountCents  int64    `json:"amount_cents"`
	From         string   `json:"from"`
	To           string   `json:"to"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

type bookingResp struct {
	ID           uint64   `json:"id"`
	SlotID       uint64   `json:"slot_id"`
	Participants []uint64 `json:"participants"`
	AmountCents  int64    `json:"amount_cents"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Status       string   `json:"status"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:           b.ID,
		SlotID:       b.SlotID,
		Participants: b.Participants,
		AmountCents:  b.AmountCents,
		From:         b.FromAt.UTC().Format(time.RFC3339),
		To:           b.ToAt.UTC().Format(time.RFC3339),
		Status:       b.Status,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateBooking handles POST /v1/bookings.  It validates the
// two-participant rule and the requested range, then, inside a single
// transaction, verifies the slot exists, runs the overlap probe over
// active bookings on the slot (locking the conflicting range), and
// persists the PENDING booking together with exactly one notification
// to the other participant.  Touching ranges do not conflict: the
// booked range is half-open [from, to).
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := booking.ValidateParticipants(req.Participants); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	other, ok := booking.OtherParticipant(req.Participants, userID)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "caller must be one of the participants"})
	}
	if req.SlotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot_id is required"})
	}
	if req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
	}
	from, err := parseTimeField(req.From)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from timestamp"})
	}
	to, err := parseTimeField(req.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to timestamp"})
	}
	if !from.Before(to) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be before to"})
	}

	ctx := c.Request().Context()

	// Load the sender's profile up front for the notification text.
	sender, err := h.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	exists, err := h.SlotRepo.ExistsTx(ctx, tx, req.SlotID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check slot"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
	}

	overlap, err := h.BookingRepo.HasOverlapTx(ctx, tx, req.SlotID, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if overlap {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrOverlap.Error()})
	}

	b := model.Booking{
		SlotID:       req.SlotID,
		Participants: req.Participants,
		AmountCents:  req.AmountCents,
		FromAt:       from,
		ToAt:         to,
		Status:       model.BookingPending,
	}
	if err := h.BookingRepo.CreateTx(ctx, tx, &b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}

	n := model.Notification{
		UserID:     other,
		SenderID:   userID,
		Content:    "You have a new booking request from " + sender.FullName,
		EntityType: "Booking",
		EntityID:   b.ID,
	}
	if err := h.NotificationRepo.CreateTx(ctx, tx, &n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create notification"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Best-effort event; the booking is already durable.
	_ = queue_publisher.PublishBookingEvent(ctx, h.AMQPURL, queue.BookingEvent{
		Kind:         queue.EventBookingCreated,
		BookingID:    b.ID,
		SlotID:       b.SlotID,
		Participants: b.Participants,
		Status:       b.Status,
		AmountCents:  b.AmountCents,
		FromAt:       b.FromAt.Format(time.RFC3339),
		ToAt:         b.ToAt.Format(time.RFC3339),
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// ListBookings handles GET /v1/bookings and returns every booking,
// newest first.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	bookings, err := h.BookingRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.BookingRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(b)})
}

// ListBookingsByUser handles GET /v1/bookings/user/:user_id.  A user
// with no bookings gets a 200 with an empty array; absence of data is
// not an error.
func (h *BookingHandler) ListBookingsByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	return h.listForUser(c, userID)
}

// ListMyBookings handles GET /v1/my-bookings for the authenticated user.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return h.listForUser(c, userID)
}

func (h *BookingHandler) listForUser(c echo.Context, userID uint64) error {
	bookings, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// UpdateStatus handles PUT /v1/bookings/:id/status.  The acting user
// is taken from the JWT and must be a participant of the booking.
// Inside a single transaction the booking row is locked, its status
// updated and, on a transition to ACCEPTED, the settlement recorded:
// a transaction paying 90% of the amount to the other participant
// followed by the linked admin revenue carrying the remaining 10%.
// A notification to the other participant is persisted for every
// transition.  Repeating the current status is a no-op, and a
// booking settles at most once: re-accepting after a cancellation
// finds the existing payout and records nothing further.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := booking.NormalizeStatus(req.Status)
	if status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx := c.Request().Context()
	tx, err := h.BookingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := h.BookingRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	other, ok := booking.OtherParticipant(b.Participants, userID)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if b.Status == status {
		return c.JSON(http.StatusOK, toBookingResp(b))
	}
	settledAlready, err := h.TransactionRepo.ExistsForBookingTx(ctx, tx, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check settlement"})
	}
	settles := booking.SettlesTransition(b.Status, status, settledAlready)

	if err := h.BookingRepo.UpdateStatusTx(ctx, tx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
	}

	var mentorCents, feeCents int64
	if settles {
		mentorCents, feeCents = booking.SplitAmountCents(b.AmountCents)
		t := model.Transaction{
			UserID:        other,
			Type:          "transfer",
			AmountCents:   mentorCents,
			Status:        "success",
			RelatedUserID: userID,
			BookingID:     b.ID,
		}
		if err := h.TransactionRepo.CreateTx(ctx, tx, &t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record transaction"})
		}
		rev := model.AdminRevenue{TransactionID: t.ID, AmountCents: feeCents}
		if err := h.TransactionRepo.CreateRevenueTx(ctx, tx, &rev); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record revenue"})
		}
	}

	n := model.Notification{
		UserID:     other,
		SenderID:   userID,
		Content:    booking.StatusMessage(status),
		EntityType: "Booking",
		EntityID:   b.ID,
	}
	if err := h.NotificationRepo.CreateTx(ctx, tx, &n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create notification"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	b.Status = status
	if settles {
		_ = queue_publisher.PublishBookingEvent(ctx, h.AMQPURL, queue.BookingEvent{
			Kind:         queue.EventBookingSettled,
			BookingID:    b.ID,
			SlotID:       b.SlotID,
			Participants: b.Participants,
			Status:       b.Status,
			AmountCents:  b.AmountCents,
			MentorCents:  mentorCents,
			FeeCents:     feeCents,
			FromAt:       b.FromAt.Format(time.RFC3339),
			ToAt:         b.ToAt.Format(time.RFC3339),
			OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, toBookingResp(b))
}

type transactionResp struct {
	ID            uint64 `json:"id"`
	UserID        uint64 `json:"user_id"`
	Type          string `json:"type"`
	AmountCents   int64  `json:"amount_cents"`
	Status        string `json:"status"`
	RelatedUserID uint64 `json:"related_user_id"`
	BookingID     uint64 `json:"booking_id"`
	CreatedAt     string `json:"created_at"`
}

// ListBookingTransactions handles GET /v1/bookings/:id/transactions.
// Only a participant of the booking may audit its settlement.
func (h *BookingHandler) ListBookingTransactions(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.BookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if _, ok := booking.OtherParticipant(b.Participants, userID); !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	list, err := h.TransactionRepo.ListByBooking(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load transactions"})
	}
	items := make([]transactionResp, 0, len(list))
	for _, t := range list {
		items = append(items, transactionResp{
			ID:            t.ID,
			UserID:        t.UserID,
			Type:          t.Type,
			AmountCents:   t.AmountCents,
			Status:        t.Status,
			RelatedUserID: t.RelatedUserID,
			BookingID:     t.BookingID,
			CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteBooking handles DELETE /v1/bookings/:id.  Transactions and
// notifications referencing the booking are intentionally left in
// place; settlement history outlives the booking record.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.BookingRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}
