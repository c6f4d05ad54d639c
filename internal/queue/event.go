// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingEvent is published when a booking is created or changes
// status.  It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type BookingEvent struct {
	Kind         string   `json:"kind"` // "created" or "settled"
	BookingID    uint64   `json:"booking_id"`
	SlotID       uint64   `json:"slot_id"`
	Participants []uint64 `json:"participants"`
	Status       string   `json:"status"`
	AmountCents  int64    `json:"amount_cents"`
	MentorCents  int64    `json:"mentor_cents,omitempty"` // set on settled events
	FeeCents     int64    `json:"fee_cents,omitempty"`    // set on settled events
	FromAt       string   `json:"from_at"`
	ToAt         string   `json:"to_at"`
	OccurredAt   string   `json:"occurred_at"`
}

// Event kinds.
const (
	EventBookingCreated = "created"
	EventBookingSettled = "settled"
)
