// Package relay fans chat messages out to room channels over Redis
// pub/sub.  The relay is a pass-through: it adds no buffering,
// ordering or delivery guarantees beyond what Redis provides, and a
// nil client turns every call into a no-op so the REST API keeps
// working without the realtime tier.
package relay

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "chat:room:"

// Relay publishes chat events to per-group Redis channels.
type Relay struct {
	rdb *redis.Client
}

// New returns a Relay backed by the given Redis client.  A nil
// client is allowed and disables fan-out.
func New(rdb *redis.Client) *Relay { return &Relay{rdb: rdb} }

// Enabled reports whether fan-out is active.
func (r *Relay) Enabled() bool { return r != nil && r.rdb != nil }

// RoomChannel returns the Redis channel name for a chat group.
func RoomChannel(groupID uint64) string {
	return channelPrefix + strconv.FormatUint(groupID, 10)
}

// Publish marshals payload as JSON and publishes it to the group's
// room channel.  Errors are returned so callers can log and ignore
// them; a failed publish never affects the durable write.
func (r *Relay) Publish(ctx context.Context, groupID uint64, payload interface{}) error {
	if !r.Enabled() {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, RoomChannel(groupID), body).Err()
}

// Subscribe joins the group's room channel.  The caller owns the
// returned PubSub and must Close it.
func (r *Relay) Subscribe(ctx context.Context, groupID uint64) *redis.PubSub {
	if !r.Enabled() {
		return nil
	}
	return r.rdb.Subscribe(ctx, RoomChannel(groupID))
}
