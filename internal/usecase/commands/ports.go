package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event kinds published on the broker when a booking changes state.
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
)

type Event struct {
	Kind       string    `json:"kind"`
	BookingID  uuid.UUID `json:"booking_id"`
	Reference  string    `json:"reference"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher is fire-and-forget: delivery failures are logged by the
// implementation and never fail the command that raised the event.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event)
}

type Metrics interface {
	BookingCreated()
	BookingCancelled()
	PaymentRecorded(txType string)
}
