package booking

import (
	"errors"

	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/space"
	"deskbook/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrSeatsExceedCapacity = errors.New("seat count exceeds the space type's total capacity")
	ErrSpaceInactive       = errors.New("space type is not active")
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateBooking prices the request against the space type's rate table and
// builds a pending booking. Capacity admission is the caller's concern; the
// factory only enforces per-booking invariants.
func (f *Factory) CreateBooking(
	spaceType *space.SpaceType,
	userID uuid.UUID,
	slot TimeSlot,
	unit pricing.DurationUnit,
	seats int32,
	memberDiscountPercent float64,
	specialRequest Note,
) (*Booking, error) {
	if !spaceType.IsActive() {
		return nil, ErrSpaceInactive
	}
	if seats > spaceType.TotalCapacity() {
		return nil, ErrSeatsExceedCapacity
	}

	quote, err := pricing.UnitQuote(spaceType.Rates(), unit, seats, memberDiscountPercent)
	if err != nil {
		return nil, err
	}

	reference := NewReference(f.Clock.Now())

	return NewBooking(userID, spaceType.ID(), seats, slot, unit, quote, reference, specialRequest), nil
}
