package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
// A user is either a MENTOR (declares availability slots and is
// paid out on accepted bookings) or a MENTEE (requests bookings).
//
// Fields:
//  ID                – primary key identifier of the user.
//  Email             – unique email address.
//  PasswordHash      – bcrypt hashed password.
//  FullName          – display name used in notification texts.
//  Role              – role name (MENTOR or MENTEE).
//  PricePerHourCents – mentor hourly rate in cents (zero for mentees).
//  CoinCents         – accumulated balance in cents.
//  IsActive          – whether the account is active.
//  IsBlocked         – whether the account has been blocked by an admin.
//  IsConfirmed       – whether the email address has been confirmed.
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type User struct {
	ID                uint64    // users.id
	Email             string    // users.email
	PasswordHash      string    // users.password_hash
	FullName          string    // users.full_name
	Role              string    // users.role
	PricePerHourCents int64     // users.price_per_hour_cents
	CoinCents         int64     // users.coin_cents
	IsActive          bool      // users.is_active
	IsBlocked         bool      // users.is_blocked
	IsConfirmed       bool      // users.is_confirmed
	CreatedAt         time.Time // users.created_at
	UpdatedAt         time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA‑256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
