// Package booking holds the pure rules of the booking engine: the
// overlap predicate, the settlement split and the participant and
// status handling shared by handlers and repositories.  Keeping
// these free of SQL makes the rules testable without a database.
package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/mentor-session-booking/internal/model"
)

// ErrParticipants is returned when a booking does not carry exactly
// two participants.  Settlement and notification targeting are only
// well defined for two-party bookings, so the rule is enforced at
// creation time.
var ErrParticipants = errors.New("booking requires exactly two distinct participants")

// mentorShareBP is the mentor's share of a settled booking in basis
// points.  The remainder is the platform fee.
const mentorShareBP = 9000

// Overlaps reports whether the half-open ranges [aFrom, aTo) and
// [bFrom, bTo) share any instant.  Ranges that merely touch at a
// boundary do not overlap.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && aTo.After(bFrom)
}

// SplitAmountCents divides a booking amount into the mentor payout
// and the platform fee.  The fee is taken as the remainder so the
// two parts always sum back to amountCents.
func SplitAmountCents(amountCents int64) (mentorCents, feeCents int64) {
	mentorCents = amountCents * mentorShareBP / 10000
	feeCents = amountCents - mentorCents
	return mentorCents, feeCents
}

// ValidateParticipants checks the exactly-two-distinct rule.
func ValidateParticipants(participants []uint64) error {
	if len(participants) != 2 || participants[0] == participants[1] ||
		participants[0] == 0 || participants[1] == 0 {
		return ErrParticipants
	}
	return nil
}

// OtherParticipant returns the participant that is not actingUserID.
// The boolean is false when the acting user is not part of the
// booking at all.
func OtherParticipant(participants []uint64, actingUserID uint64) (uint64, bool) {
	if len(participants) != 2 {
		return 0, false
	}
	switch actingUserID {
	case participants[0]:
		return participants[1], true
	case participants[1]:
		return participants[0], true
	}
	return 0, false
}

// NormalizeStatus maps client input onto one of the stored status
// constants.  The empty string is returned for unknown values.
func NormalizeStatus(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case model.BookingPending:
		return model.BookingPending
	case model.BookingAccepted:
		return model.BookingAccepted
	case model.BookingCanceled, "CANCELLED":
		return model.BookingCanceled
	}
	return ""
}

// StatusMessage returns the notification text for a transition to
// the given status.  Statuses without a user-facing message yield
// an empty string; callers still persist the notification.
func StatusMessage(status string) string {
	switch status {
	case model.BookingAccepted:
		return "Your booking has been confirmed"
	case model.BookingCanceled:
		return "Your booking has been rejected"
	}
	return ""
}

// SettlesTransition reports whether moving from prev to next records
// a settlement.  Only a transition into ACCEPTED settles, and a
// booking settles at most once: once a payout exists, re-accepting
// after a cancellation records nothing further.
func SettlesTransition(prev, next string, alreadySettled bool) bool {
	return next == model.BookingAccepted && prev != model.BookingAccepted && !alreadySettled
}
