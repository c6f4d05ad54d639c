package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/mentor-session-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their
// participants.  A booking reserves part of a mentor availability
// window for exactly two users; the pair is stored in the
// booking_participants table in request order.  All timestamp
// fields are assumed to be stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning booking, notification and settlement writes.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// HasOverlapTx runs the authoritative overlap probe inside the
// caller's transaction: an active (PENDING or ACCEPTED) booking on
// the slot conflicts when existing.from_at < to AND
// existing.to_at > from, i.e. half-open ranges sharing any instant.
// FOR UPDATE locks the matching rows so two concurrent creations
// against the same slot cannot both pass the probe and commit.
func (r *BookingRepo) HasOverlapTx(ctx context.Context, tx *sql.Tx, slotID uint64, from, to time.Time) (bool, error) {
	const q = `SELECT COUNT(*) FROM bookings
	           WHERE slot_id = ? AND status IN ('PENDING','ACCEPTED')
	             AND from_at < ? AND to_at > ?
	           FOR UPDATE`
	var n int
	if err := tx.QueryRowContext(ctx, q, slotID, to.UTC(), from.UTC()).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateTx inserts a new booking and its participant rows within
// the scope of an existing transaction.  It populates the generated
// ID and timestamps on the provided model and returns any error
// from the database.  The caller must commit or rollback the
// transaction.  Status should be a valid enumeration
// ('PENDING','ACCEPTED','CANCELED').
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (slot_id, amount_cents, from_at, to_at, status) VALUES (?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, b.SlotID, b.AmountCents, b.FromAt.UTC(), b.ToAt.UTC(), b.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	if err := r.createParticipantsTx(ctx, tx, b.ID, b.Participants); err != nil {
		return err
	}
	// Query back the row to populate timestamps and defaults.
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// createParticipantsTx inserts all participant rows in a single
// statement, preserving request order in the position column.
func (r *BookingRepo) createParticipantsTx(ctx context.Context, tx *sql.Tx, bookingID uint64, participants []uint64) error {
	if len(participants) == 0 {
		return nil
	}
	query := `INSERT INTO booking_participants (booking_id, user_id, position) VALUES `
	args := make([]interface{}, 0, len(participants)*3)
	for i, uid := range participants {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, bookingID, uid, i)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const bookingColumns = `b.id, b.slot_id, b.amount_cents, b.from_at, b.to_at, b.status, b.created_at, b.updated_at`

func scanBooking(rows interface {
	Scan(dest ...interface{}) error
}) (model.Booking, error) {
	var b model.Booking
	err := rows.Scan(&b.ID, &b.SlotID, &b.AmountCents, &b.FromAt, &b.ToAt, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// GetByID returns a single booking with its participants populated.
// ErrBookingNotFound is returned when the id matches no row.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	if err != nil {
		return b, err
	}
	parts, err := r.participants(ctx, []uint64{b.ID})
	if err != nil {
		return b, err
	}
	b.Participants = parts[b.ID]
	return b, nil
}

// GetForUpdateTx loads a booking and its participants inside the
// caller's transaction, locking the booking row so a concurrent
// transition cannot settle the same booking twice.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	if err != nil {
		return b, err
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT user_id FROM booking_participants WHERE booking_id = ? ORDER BY position`, id)
	if err != nil {
		return b, err
	}
	defer rows.Close()
	for rows.Next() {
		var uid uint64
		if err := rows.Scan(&uid); err != nil {
			return b, err
		}
		b.Participants = append(b.Participants, uid)
	}
	return b, rows.Err()
}

// UpdateStatusTx sets the booking status within the caller's
// transaction.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// status may be unchanged; verify the row exists
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ?`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBookingNotFound
			}
			return err
		}
	}
	return nil
}

// ListAll returns every booking ordered by creation time descending
// with participants populated.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx, `SELECT `+bookingColumns+` FROM bookings b ORDER BY b.created_at DESC`)
}

// ListByUser returns all bookings in which the user participates,
// newest first.  When no bookings exist, an empty slice is
// returned; absence of data is not an error.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 JOIN booking_participants bp ON bp.booking_id = b.id
		 WHERE bp.user_id = ?
		 ORDER BY b.created_at DESC`, userID)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	index := make(map[uint64]int)
	ids := make([]uint64, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		index[b.ID] = len(bookings)
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}
	parts, err := r.participants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, idx := range index {
		bookings[idx].Participants = parts[id]
	}
	return bookings, nil
}

// participants loads participant lists for all given booking ids in
// a single query, keyed by booking id and ordered by position.
func (r *BookingRepo) participants(ctx context.Context, ids []uint64) (map[uint64][]uint64, error) {
	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	query := `SELECT booking_id, user_id FROM booking_participants
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, position`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64][]uint64, len(ids))
	for rows.Next() {
		var bid, uid uint64
		if err := rows.Scan(&bid, &uid); err != nil {
			return nil, err
		}
		out[bid] = append(out[bid], uid)
	}
	return out, rows.Err()
}

// Delete removes a booking and its participant rows (FK cascade).
// Transactions and notifications produced by the booking are left
// in place; removing history is an explicit admin concern.
// ErrBookingNotFound is returned when the id matches no row.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
