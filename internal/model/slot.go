package model

import "time"

// FreeTimeSlot is a mentor-declared availability window stored in
// the `free_time_slots` table.  Slots are referenced, never
// mutated, by bookings; deleting a slot is only allowed while no
// active booking points at it.
//
// Fields:
//  ID        – primary key identifier.
//  MentorID  – mentor who declared the window.
//  StartsAt  – beginning of the availability window (UTC).
//  EndsAt    – end of the availability window (must be after StartsAt).
//  CreatedAt – creation timestamp.
type FreeTimeSlot struct {
	ID        uint64    // free_time_slots.id
	MentorID  uint64    // free_time_slots.mentor_id
	StartsAt  time.Time // free_time_slots.starts_at
	EndsAt    time.Time // free_time_slots.ends_at
	CreatedAt time.Time // free_time_slots.created_at
}
