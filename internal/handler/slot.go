package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mentor-session-booking/internal/model"
	"github.com/iliyamo/mentor-session-booking/internal/repository"
)

// SlotHandler serves mentor availability windows.  Creation and
// deletion are mentor-only routes; listing is open to any
// authenticated user so mentees can browse availability.
type SlotHandler struct {
	Slots *repository.SlotRepo
}

// NewSlotHandler constructs a SlotHandler.  The repository must be non-nil.
func NewSlotHandler(slots *repository.SlotRepo) *SlotHandler {
	if slots == nil {
		panic("nil repository passed to NewSlotHandler")
	}
	return &SlotHandler{Slots: slots}
}

type createSlotReq struct {
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

type slotResp struct {
	ID       uint64 `json:"id"`
	MentorID uint64 `json:"mentor_id"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

func toSlotResp(s model.FreeTimeSlot) slotResp {
	return slotResp{
		ID:       s.ID,
		MentorID: s.MentorID,
		StartsAt: s.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:   s.EndsAt.UTC().Format(time.RFC3339),
	}
}

// CreateSlot handles POST /v1/slots.  The mentor is the
// authenticated caller; the body only carries the window.
func (h *SlotHandler) CreateSlot(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createSlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	starts, err := parseTimeField(req.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid starts_at timestamp"})
	}
	ends, err := parseTimeField(req.EndsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ends_at timestamp"})
	}
	if !starts.Before(ends) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be before ends_at"})
	}

	s := model.FreeTimeSlot{MentorID: mentorID, StartsAt: starts, EndsAt: ends}
	if err := h.Slots.Create(c.Request().Context(), &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create slot"})
	}
	return c.JSON(http.StatusCreated, toSlotResp(s))
}

// ListMentorSlots handles GET /v1/slots/mentor/:mentor_id.  A mentor
// with no declared windows gets an empty array.
func (h *SlotHandler) ListMentorSlots(c echo.Context) error {
	mentorID, err := strconv.ParseUint(c.Param("mentor_id"), 10, 64)
	if err != nil || mentorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid mentor id"})
	}
	slots, err := h.Slots.ListByMentor(c.Request().Context(), mentorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load slots"})
	}
	items := make([]slotResp, 0, len(slots))
	for _, s := range slots {
		items = append(items, toSlotResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// DeleteSlot handles DELETE /v1/slots/:id.  Only the owning mentor
// may delete, and only while no PENDING or ACCEPTED booking
// references the slot.
func (h *SlotHandler) DeleteSlot(c echo.Context) error {
	mentorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	switch err := h.Slots.Delete(c.Request().Context(), id, mentorID); {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrSlotNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrSlotInUse):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot has active bookings"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete slot"})
	}
}
