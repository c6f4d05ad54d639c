package handler

import (
	"net/http"
	"testing"
)

func TestCreateSlotRejectsBadWindow(t *testing.T) {
	h := &SlotHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"bad starts_at", `{"starts_at":"soon","ends_at":"2026-09-01T11:00:00Z"}`},
		{"bad ends_at", `{"starts_at":"2026-09-01T10:00:00Z","ends_at":""}`},
		{"inverted", `{"starts_at":"2026-09-01T11:00:00Z","ends_at":"2026-09-01T10:00:00Z"}`},
		{"zero length", `{"starts_at":"2026-09-01T10:00:00Z","ends_at":"2026-09-01T10:00:00Z"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/v1/slots", tc.body, uint64(1))
			if err := h.CreateSlot(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateSlotRejectsUnauthenticated(t *testing.T) {
	h := &SlotHandler{}
	c, rec := newJSONContext(t, http.MethodPost, "/v1/slots", `{}`, nil)
	if err := h.CreateSlot(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestListMentorSlotsRejectsBadID(t *testing.T) {
	h := &SlotHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/v1/slots/mentor/abc", "", uint64(1))
	c.SetParamNames("mentor_id")
	c.SetParamValues("abc")
	if err := h.ListMentorSlots(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
