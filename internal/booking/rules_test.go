package booking

import (
	"testing"
	"time"

	"github.com/iliyamo/mentor-session-booking/internal/model"
)

func at(hour int) time.Time {
	return time.Date(2025, time.March, 10, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aFrom, aTo, bFrom, bTo int
		want                   bool
	}{
		{"contained", 10, 12, 11, 13, true},
		{"identical", 10, 12, 10, 12, true},
		{"engulfing", 10, 14, 11, 12, true},
		{"touching boundary is free", 10, 12, 12, 14, false},
		{"touching boundary reversed", 12, 14, 10, 12, false},
		{"disjoint", 8, 9, 10, 12, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(at(tc.aFrom), at(tc.aTo), at(tc.bFrom), at(tc.bTo))
			if got != tc.want {
				t.Errorf("Overlaps(%d-%d, %d-%d) = %v, want %v",
					tc.aFrom, tc.aTo, tc.bFrom, tc.bTo, got, tc.want)
			}
			// overlap is symmetric
			if rev := Overlaps(at(tc.bFrom), at(tc.bTo), at(tc.aFrom), at(tc.aTo)); rev != got {
				t.Errorf("Overlaps not symmetric for %s", tc.name)
			}
		})
	}
}

func TestSplitAmountCents(t *testing.T) {
	cases := []struct {
		amount, mentor, fee int64
	}{
		{10000, 9000, 1000},
		{100, 90, 10},
		{1, 0, 1},
		{0, 0, 0},
		{33333, 29999, 3334},
	}
	for _, tc := range cases {
		mentor, fee := SplitAmountCents(tc.amount)
		if mentor != tc.mentor || fee != tc.fee {
			t.Errorf("SplitAmountCents(%d) = (%d, %d), want (%d, %d)",
				tc.amount, mentor, fee, tc.mentor, tc.fee)
		}
		if mentor+fee != tc.amount {
			t.Errorf("split of %d does not sum back: %d + %d", tc.amount, mentor, fee)
		}
	}
}

func TestValidateParticipants(t *testing.T) {
	if err := ValidateParticipants([]uint64{1, 2}); err != nil {
		t.Errorf("two distinct participants rejected: %v", err)
	}
	for _, bad := range [][]uint64{nil, {1}, {1, 1}, {1, 2, 3}, {0, 2}, {1, 0}} {
		if err := ValidateParticipants(bad); err == nil {
			t.Errorf("ValidateParticipants(%v) = nil, want error", bad)
		}
	}
}

func TestOtherParticipant(t *testing.T) {
	parts := []uint64{7, 9}
	if other, ok := OtherParticipant(parts, 7); !ok || other != 9 {
		t.Errorf("OtherParticipant(parts, 7) = (%d, %v), want (9, true)", other, ok)
	}
	if other, ok := OtherParticipant(parts, 9); !ok || other != 7 {
		t.Errorf("OtherParticipant(parts, 9) = (%d, %v), want (7, true)", other, ok)
	}
	if _, ok := OtherParticipant(parts, 5); ok {
		t.Error("stranger accepted as participant")
	}
	if _, ok := OtherParticipant([]uint64{7}, 7); ok {
		t.Error("one-participant booking accepted")
	}
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"accepted":  model.BookingAccepted,
		"ACCEPTED":  model.BookingAccepted,
		" Canceled": model.BookingCanceled,
		"cancelled": model.BookingCanceled,
		"pending":   model.BookingPending,
		"done":      "",
		"":          "",
	}
	for in, want := range cases {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusMessage(t *testing.T) {
	if msg := StatusMessage(model.BookingAccepted); msg == "" {
		t.Error("ACCEPTED should carry a notification message")
	}
	if msg := StatusMessage(model.BookingCanceled); msg == "" {
		t.Error("CANCELED should carry a notification message")
	}
	if msg := StatusMessage(model.BookingPending); msg != "" {
		t.Errorf("PENDING message = %q, want empty", msg)
	}
}

func TestSettlesTransition(t *testing.T) {
	if !SettlesTransition(model.BookingPending, model.BookingAccepted, false) {
		t.Error("first transition to ACCEPTED must settle")
	}
	if SettlesTransition(model.BookingPending, model.BookingCanceled, false) {
		t.Error("CANCELED must not settle")
	}
	if SettlesTransition(model.BookingAccepted, model.BookingAccepted, false) {
		t.Error("repeating ACCEPTED must not settle")
	}
	// accept, cancel, accept again: the second acceptance finds the
	// existing payout and records nothing further
	if SettlesTransition(model.BookingCanceled, model.BookingAccepted, true) {
		t.Error("re-accepting a settled booking must not settle again")
	}
	if !SettlesTransition(model.BookingCanceled, model.BookingAccepted, false) {
		t.Error("accepting an unsettled canceled booking must settle")
	}
}
