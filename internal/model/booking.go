package model

import "time"

// Booking statuses.  Stored upper-case in the `bookings.status`
// enum column.  A booking starts PENDING and is moved to ACCEPTED
// or CANCELED exactly once by one of its participants.
const (
	BookingPending  = "PENDING"
	BookingAccepted = "ACCEPTED"
	BookingCanceled = "CANCELED"
)

// Booking records a request for a mentor's time slot made by a
// mentee.  The participants of a booking are stored in the
// `booking_participants` table in request order; exactly two
// participants are required so that "the other participant" is
// well defined for settlement and notifications.
//
// Invariant: for a given slot, no two PENDING or ACCEPTED bookings
// may have overlapping half-open [FromAt, ToAt) ranges.
//
// Fields:
//  ID           – primary key identifier.
//  SlotID       – availability window being booked.
//  Participants – the two users taking part, in request order.
//  AmountCents  – agreed price in cents.
//  FromAt       – start of the booked range (UTC).
//  ToAt         – end of the booked range (exclusive).
//  Status       – PENDING, ACCEPTED or CANCELED.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Booking struct {
	ID           uint64    // bookings.id
	SlotID       uint64    // bookings.slot_id
	Participants []uint64  // booking_participants.user_id ordered by position
	AmountCents  int64     // bookings.amount_cents
	FromAt       time.Time // bookings.from_at
	ToAt         time.Time // bookings.to_at
	Status       string    // bookings.status
	CreatedAt    time.Time // bookings.created_at
	UpdatedAt    time.Time // bookings.updated_at
}
