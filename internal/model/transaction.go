package model

import "time"

// Transaction records a payout movement produced by a booking
// settlement.  Rows exist only as a consequence of a booking
// transitioning to ACCEPTED and are never created independently.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – recipient of the payout (the mentor).
//  Type          – movement type, currently always "transfer".
//  AmountCents   – payout amount in cents (90% of the booking amount).
//  Status        – movement status, currently always "success".
//  RelatedUserID – the participant whose action triggered the payout.
//  BookingID     – originating booking.
//  CreatedAt     – creation timestamp.
type Transaction struct {
	ID            uint64    // transactions.id
	UserID        uint64    // transactions.user_id
	Type          string    // transactions.type
	AmountCents   int64     // transactions.amount_cents
	Status        string    // transactions.status
	RelatedUserID uint64    // transactions.related_user_id
	BookingID     uint64    // transactions.booking_id
	CreatedAt     time.Time // transactions.created_at
}

// AdminRevenue is the platform's fee for a settled booking, linked
// 1:1 to the transaction that produced it via TransactionID.
//
// Fields:
//  ID            – primary key identifier.
//  TransactionID – unique reference to the paired transaction.
//  AmountCents   – platform fee in cents (10% of the booking amount).
//  CreatedAt     – creation timestamp.
type AdminRevenue struct {
	ID            uint64    // admin_revenues.id
	TransactionID uint64    // admin_revenues.transaction_id
	AmountCents   int64     // admin_revenues.amount_cents
	CreatedAt     time.Time // admin_revenues.created_at
}
