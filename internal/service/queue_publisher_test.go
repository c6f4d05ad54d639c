package queue_publisher

import (
	"context"
	"testing"

	q "github.com/iliyamo/mentor-session-booking/internal/queue"
)

func TestPublishBookingEventBadURL(t *testing.T) {
	err := PublishBookingEvent(context.Background(), "not-a-valid-amqp-uri", q.BookingEvent{
		Kind:      q.EventBookingCreated,
		BookingID: 1,
	})
	if err == nil {
		t.Fatal("expected an error for a malformed broker URL")
	}
}
