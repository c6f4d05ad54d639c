// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrOverlap signals that a booking collides
// with an existing one on the same slot.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrOverlap is returned when a booking cannot be created because
// an active booking on the same slot covers part of the requested
// range. Handlers should translate this into an HTTP 409 response.
var ErrOverlap = errors.New("booking time overlaps with existing booking")

// ErrSlotNotFound is returned when a referenced availability slot
// does not exist.
var ErrSlotNotFound = errors.New("slot not found")

// ErrBookingNotFound is returned when a booking id does not match
// any row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSlotInUse is returned when deleting a slot that still has
// active bookings pointing at it. Handlers should translate this
// into an HTTP 409 response.
var ErrSlotInUse = errors.New("slot has active bookings")
