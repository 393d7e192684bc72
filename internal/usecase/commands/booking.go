package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deskbook/internal/domain/booking"
	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/user"
	"deskbook/internal/infra"
	"deskbook/internal/pkg/clock"
	"deskbook/internal/pkg/errs"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSpaceNotFound         = errs.New("space type not found")
	ErrBookingNotFoundWrite  = errs.New("booking not found")
	ErrBookingNotOwned       = errs.New("booking not owned by user")
	ErrInvalidTimeSlot       = errs.New("invalid time slot")
	ErrCapacityExceeded      = errs.New("not enough seats available")
	ErrDomainValidation      = errs.New("domain validation error")
	ErrReferenceExhausted    = errs.New("could not generate a unique booking reference")
	ErrCancelNotAllowed      = errs.New("booking can no longer be cancelled")
	ErrInvalidStatusOverride = errs.New("invalid status override")
)

// referenceRetries bounds regeneration when a reference collides on insert.
const referenceRetries = 3

// CapacityError reports how far a request overshot the remaining seats for
// its window. Retrieve it with errors.As; errors.Is(err, ErrCapacityExceeded)
// also holds.
type CapacityError struct {
	Requested int32
	Available int32
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("requested %d seats but only %d available", e.Requested, e.Available)
}

type CreateBookingRequest struct {
	SpaceTypeID    uuid.UUID
	Seats          int32
	StartTime      time.Time
	EndTime        time.Time
	DurationUnit   string
	SpecialRequest string
}

type CreateBookingResult struct {
	BookingID uuid.UUID
	Reference string
}

type OverrideStatusRequest struct {
	Status       string
	CheckInTime  *time.Time
	CheckOutTime *time.Time
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, userID uuid.UUID) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error
	OverrideStatus(ctx context.Context, bookingID uuid.UUID, req OverrideStatusRequest, actorID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	clock   clock.Clock
	events  EventPublisher
	metrics Metrics
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	clk clock.Clock,
	events EventPublisher,
	metrics Metrics,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:     uow,
		factory: factory,
		clock:   clk,
		events:  events,
		metrics: metrics,
	}
}

// CreateBooking admits the request against remaining capacity and persists a
// pending booking. The space type row is locked for the whole check-then-insert
// sequence, so two concurrent requests for the same window serialize: the
// second sees the first's seats in the committed sum.
func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest, userID uuid.UUID) (*CreateBookingResult, error) {
	slot, err := booking.NewTimeSlot(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	unit := pricing.DurationUnit(req.DurationUnit)
	if !unit.IsValid() {
		unit = pricing.UnitHourly
	}

	var result *CreateBookingResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		spaceType, derr := tx.Reads().SpaceTypeForUpdate(ctx, req.SpaceTypeID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrSpaceNotFound
			}
			return derr
		}

		committed, derr := tx.Reads().CommittedSeats(ctx, req.SpaceTypeID, slot.Start(), slot.End())
		if derr != nil {
			return derr
		}
		available := spaceType.TotalCapacity() - committed
		if req.Seats > available {
			capErr := &CapacityError{Requested: req.Seats, Available: available}
			return errs.Mark(capErr, ErrCapacityExceeded)
		}

		discount, derr := uc.effectiveDiscount(ctx, tx, userID, spaceType.MemberDiscountPercent())
		if derr != nil {
			return derr
		}

		entity, derr := uc.factory.CreateBooking(
			spaceType, userID, slot, unit, req.Seats, discount, booking.NewNote(req.SpecialRequest),
		)
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}

		id, derr := uc.insertWithFreshReference(ctx, tx, entity)
		if derr != nil {
			return derr
		}

		result = &CreateBookingResult{BookingID: id, Reference: entity.Reference().String()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated()
	return result, nil
}

// insertWithFreshReference retries a bounded number of times when the
// timestamp+random reference collides with an existing row.
func (uc *bookingUseCaseImpl) insertWithFreshReference(ctx context.Context, tx shared.Tx, entity *booking.Booking) (uuid.UUID, error) {
	for attempt := 0; attempt < referenceRetries; attempt++ {
		id, err := tx.Bookings().Create(ctx, tx.DB(), entity)
		if err == nil {
			return id, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, err
		}
		slog.Warn("booking reference collision, regenerating",
			"reference", entity.Reference().String(), "attempt", attempt+1)
		entity.RegenerateReference(uc.clock.Now())
	}
	return uuid.Nil, ErrReferenceExhausted
}

// effectiveDiscount resolves the member discount applied to this booking: the
// space type's percentage when the user holds an active membership, zero
// otherwise.
func (uc *bookingUseCaseImpl) effectiveDiscount(ctx context.Context, tx shared.Tx, userID uuid.UUID, memberDiscountPercent float64) (float64, error) {
	usr, err := tx.Reads().UserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if usr.HasActiveMembership(uc.clock.Now()) {
		return memberDiscountPercent, nil
	}
	return 0, nil
}

// CancelBooking cancels a pending booking. Owners cancel their own; staff can
// cancel anyone's. Confirmed bookings are beyond cancellation here and need a
// staff status override.
func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, actorRole user.Role) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, derr := tx.Reads().BookingForUpdate(ctx, bookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFoundWrite
			}
			return derr
		}
		if entity.UserID() != actorID && !actorRole.IsStaff() {
			return ErrBookingNotOwned
		}
		if derr = entity.Cancel(); derr != nil {
			return errs.Mark(derr, ErrCancelNotAllowed)
		}
		return tx.Bookings().Update(ctx, tx.DB(), entity)
	})
	if err != nil {
		return err
	}

	uc.metrics.BookingCancelled()
	return nil
}

// OverrideStatus lets staff force a booking into any valid status. A
// confirmed booking moved to in_progress without an explicit check-in time
// is the normal desk check-in and stamps the current time; everything else
// bypasses the transition table. The actor is logged for the audit trail.
func (uc *bookingUseCaseImpl) OverrideStatus(ctx context.Context, bookingID uuid.UUID, req OverrideStatusRequest, actorID uuid.UUID) error {
	newStatus := booking.Status(req.Status)
	if !newStatus.IsValid() {
		return ErrInvalidStatusOverride
	}

	var (
		previous  booking.Status
		reference string
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, derr := tx.Reads().BookingForUpdate(ctx, bookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFoundWrite
			}
			return derr
		}

		previous = entity.Status()
		reference = entity.Reference().String()
		if newStatus == booking.StatusInProgress && previous == booking.StatusConfirmed && req.CheckInTime == nil {
			derr = entity.CheckIn(uc.clock.Now())
		} else {
			derr = entity.Override(newStatus, req.CheckInTime, req.CheckOutTime)
		}
		if derr != nil {
			return errs.Mark(derr, ErrInvalidStatusOverride)
		}
		return tx.Bookings().Update(ctx, tx.DB(), entity)
	})
	if err != nil {
		return err
	}

	slog.Info("booking status overridden",
		"booking_id", bookingID,
		"reference", reference,
		"from", previous.String(),
		"to", newStatus.String(),
		"actor_id", actorID,
	)
	uc.publishStatusEvent(ctx, bookingID, reference, newStatus)
	return nil
}

func (uc *bookingUseCaseImpl) publishStatusEvent(ctx context.Context, bookingID uuid.UUID, reference string, status booking.Status) {
	var kind string
	switch status {
	case booking.StatusConfirmed:
		kind = EventBookingConfirmed
	case booking.StatusCompleted:
		kind = EventBookingCompleted
	case booking.StatusCancelled:
		kind = EventBookingCancelled
	default:
		return
	}
	uc.events.Publish(ctx, Event{
		Kind:       kind,
		BookingID:  bookingID,
		Reference:  reference,
		OccurredAt: uc.clock.Now(),
	})
}
