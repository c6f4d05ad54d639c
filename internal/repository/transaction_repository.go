package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/mentor-session-booking/internal/model"
)

// TransactionRepo persists settlement records: the mentor payout in
// the transactions table and the platform fee in admin_revenues,
// linked 1:1 through transaction_id.  Both writes happen inside the
// status-transition transaction owned by the booking handler, so a
// payout can never commit without its fee record.
type TransactionRepo struct {
	db *sql.DB
}

// NewTransactionRepo returns a new TransactionRepo bound to the given database.
func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// CreateTx inserts a payout movement within the caller's
// transaction and populates the generated ID.
func (r *TransactionRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Transaction) error {
	const q = `INSERT INTO transactions (user_id, type, amount_cents, status, related_user_id, booking_id)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.UserID, t.Type, t.AmountCents, t.Status, t.RelatedUserID, t.BookingID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// CreateRevenueTx inserts the platform fee linked to an existing
// transaction within the caller's transaction.
func (r *TransactionRepo) CreateRevenueTx(ctx context.Context, tx *sql.Tx, rev *model.AdminRevenue) error {
	const q = `INSERT INTO admin_revenues (transaction_id, amount_cents) VALUES (?, ?)`
	res, err := tx.ExecContext(ctx, q, rev.TransactionID, rev.AmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rev.ID = uint64(id)
	return nil
}

// ExistsForBookingTx reports, inside the caller's transaction,
// whether a settlement was already recorded for the booking.  The
// status-transition handler uses it to keep settlement once-only
// across accept/cancel/accept cycles.
func (r *TransactionRepo) ExistsForBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM transactions WHERE booking_id = ? LIMIT 1`, bookingID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByBooking returns the payout movements recorded for a
// booking, oldest first.  Used by operators to audit a settlement.
func (r *TransactionRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, type, amount_cents, status, related_user_id, booking_id, created_at
		 FROM transactions WHERE booking_id = ? ORDER BY created_at`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Transaction, 0)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.AmountCents, &t.Status,
			&t.RelatedUserID, &t.BookingID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
