package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/mentor-session-booking/internal/model"
)

// SlotRepo provides access to mentor availability windows in the
// free_time_slots table.  Slots are immutable once declared; the
// only mutation is deletion, which is refused while active
// bookings still reference the slot.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo returns a new SlotRepo bound to the given database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *SlotRepo) DB() *sql.DB { return r.db }

// Create inserts an availability window and populates the generated
// ID and creation timestamp on the provided model.
func (r *SlotRepo) Create(ctx context.Context, s *model.FreeTimeSlot) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO free_time_slots (mentor_id, starts_at, ends_at) VALUES (?, ?, ?)`,
		s.MentorID, s.StartsAt.UTC(), s.EndsAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT created_at FROM free_time_slots WHERE id = ?`, s.ID).Scan(&s.CreatedAt)
}

// GetByID returns one slot or ErrSlotNotFound.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (model.FreeTimeSlot, error) {
	var s model.FreeTimeSlot
	err := r.db.QueryRowContext(ctx,
		`SELECT id, mentor_id, starts_at, ends_at, created_at FROM free_time_slots WHERE id = ?`,
		id).Scan(&s.ID, &s.MentorID, &s.StartsAt, &s.EndsAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrSlotNotFound
	}
	return s, err
}

// ExistsTx checks slot existence inside the caller's transaction so
// the booking overlap probe and the existence check observe the
// same snapshot.
func (r *SlotRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM free_time_slots WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByMentor returns a mentor's declared windows ordered by start
// time ascending.  An empty slice is a valid result.
func (r *SlotRepo) ListByMentor(ctx context.Context, mentorID uint64) ([]model.FreeTimeSlot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, mentor_id, starts_at, ends_at, created_at
		 FROM free_time_slots WHERE mentor_id = ? ORDER BY starts_at`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]model.FreeTimeSlot, 0)
	for rows.Next() {
		var s model.FreeTimeSlot
		if err := rows.Scan(&s.ID, &s.MentorID, &s.StartsAt, &s.EndsAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Delete removes a mentor's slot.  It returns ErrSlotNotFound when
// the id does not exist, ErrForbidden when the slot belongs to a
// different mentor and ErrSlotInUse when PENDING or ACCEPTED
// bookings still reference the slot.
func (r *SlotRepo) Delete(ctx context.Context, id, mentorID uint64) error {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT mentor_id FROM free_time_slots WHERE id = ?`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return err
	}
	if owner != mentorID {
		return ErrForbidden
	}
	var active int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE slot_id = ? AND status IN ('PENDING','ACCEPTED')`,
		id).Scan(&active); err != nil {
		return err
	}
	if active > 0 {
		return ErrSlotInUse
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM free_time_slots WHERE id = ?`, id)
	return err
}
