package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// newJSONContext builds an echo context carrying a JSON body and an
// authenticated user.  Validation failures are rejected before any
// repository call, so a zero-value handler is enough here.
func newJSONContext(t *testing.T, method, path, body string, userID interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestCreateBookingRejectsUnauthenticated(t *testing.T) {
	h := &BookingHandler{}
	c, rec := newJSONContext(t, http.MethodPost, "/v1/bookings", `{}`, nil)
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateBookingRejectsBadParticipants(t *testing.T) {
	h := &BookingHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"none", `{"slot_id":1,"amount_cents":100,"from":"2026-09-01T10:00:00Z","to":"2026-09-01T11:00:00Z"}`},
		{"one", `{"participants":[1],"slot_id":1,"amount_cents":100}`},
		{"three", `{"participants":[1,2,3],"slot_id":1,"amount_cents":100}`},
		{"duplicate", `{"participants":[4,4],"slot_id":1,"amount_cents":100}`},
		{"zero id", `{"participants":[0,2],"slot_id":1,"amount_cents":100}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/v1/bookings", tc.body, uint64(1))
			if err := h.CreateBooking(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateBookingRejectsNonParticipantCaller(t *testing.T) {
	h := &BookingHandler{}
	body := `{"participants":[2,3],"slot_id":1,"amount_cents":100,"from":"2026-09-01T10:00:00Z","to":"2026-09-01T11:00:00Z"}`
	c, rec := newJSONContext(t, http.MethodPost, "/v1/bookings", body, uint64(1))
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateBookingRejectsBadRange(t *testing.T) {
	h := &BookingHandler{}
	cases := []struct {
		name string
		body string
	}{
		{"bad from", `{"participants":[1,2],"slot_id":1,"amount_cents":100,"from":"yesterday","to":"2026-09-01T11:00:00Z"}`},
		{"bad to", `{"participants":[1,2],"slot_id":1,"amount_cents":100,"from":"2026-09-01T10:00:00Z","to":""}`},
		{"inverted", `{"participants":[1,2],"slot_id":1,"amount_cents":100,"from":"2026-09-01T11:00:00Z","to":"2026-09-01T10:00:00Z"}`},
		{"empty range", `{"participants":[1,2],"slot_id":1,"amount_cents":100,"from":"2026-09-01T10:00:00Z","to":"2026-09-01T10:00:00Z"}`},
		{"zero amount", `{"participants":[1,2],"slot_id":1,"amount_cents":0,"from":"2026-09-01T10:00:00Z","to":"2026-09-01T11:00:00Z"}`},
		{"missing slot", `{"participants":[1,2],"amount_cents":100,"from":"2026-09-01T10:00:00Z","to":"2026-09-01T11:00:00Z"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/v1/bookings", tc.body, uint64(1))
			if err := h.CreateBooking(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h := &BookingHandler{}
	c, rec := newJSONContext(t, http.MethodPut, "/v1/bookings/1/status", `{"status":"MAYBE"}`, uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateStatusRejectsBadID(t *testing.T) {
	h := &BookingHandler{}
	c, rec := newJSONContext(t, http.MethodPut, "/v1/bookings/x/status", `{"status":"ACCEPTED"}`, uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("x")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetBookingRejectsBadID(t *testing.T) {
	h := &BookingHandler{}
	c, rec := newJSONContext(t, http.MethodGet, "/v1/bookings/0", "", uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("0")
	if err := h.GetBooking(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
