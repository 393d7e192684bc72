package booking

import (
	"errors"
	"time"

	"deskbook/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid reservation state transition")
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrNotCheckedIn      = errors.New("reservation has not been checked in")
)

// Booking is one customer's seat commitment for a time window. All lifecycle
// transitions go through the methods below; the repository persists whatever
// state the entity reaches and never mutates fields on its own.
type Booking struct {
	id             uuid.UUID
	userID         uuid.UUID
	spaceTypeID    uuid.UUID
	seats          int32
	slot           TimeSlot
	durationUnit   pricing.DurationUnit
	status         Status
	price          PriceBreakdown
	reference      Reference
	specialRequest Note
	checkInTime    *time.Time
	checkOutTime   *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewBooking(
	userID, spaceTypeID uuid.UUID,
	seats int32,
	slot TimeSlot,
	durationUnit pricing.DurationUnit,
	quote pricing.Quote,
	reference Reference,
	specialRequest Note,
) *Booking {
	return &Booking{
		id:             uuid.New(),
		userID:         userID,
		spaceTypeID:    spaceTypeID,
		seats:          seats,
		slot:           slot,
		durationUnit:   durationUnit,
		status:         StatusPending,
		price:          NewPriceBreakdown(quote),
		reference:      reference,
		specialRequest: specialRequest,
	}
}

func ReconstructBooking(
	id, userID, spaceTypeID uuid.UUID,
	seats int32,
	slot TimeSlot,
	durationUnit pricing.DurationUnit,
	status Status,
	price PriceBreakdown,
	reference Reference,
	specialRequest Note,
	checkInTime, checkOutTime *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		userID:         userID,
		spaceTypeID:    spaceTypeID,
		seats:          seats,
		slot:           slot,
		durationUnit:   durationUnit,
		status:         status,
		price:          price,
		reference:      reference,
		specialRequest: specialRequest,
		checkInTime:    checkInTime,
		checkOutTime:   checkOutTime,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// RegenerateReference replaces the reference after an insert collision.
func (b *Booking) RegenerateReference(now time.Time) {
	b.reference = NewReference(now)
}

// ConfirmDeposit applies the deposit payment: half of the total, rounded so
// that deposit + balance equals total exactly. Returns the amount collected.
func (b *Booking) ConfirmDeposit() (pricing.Money, error) {
	if b.status != StatusPending {
		return pricing.Money{}, ErrInvalidTransition
	}

	deposit, balance := b.price.Total.Halve()
	b.price.DepositPaid = deposit
	b.price.BalanceDue = balance
	b.status = StatusConfirmed
	return deposit, nil
}

// CheckIn is a staff action moving a confirmed booking into use.
func (b *Booking) CheckIn(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrInvalidTransition
	}

	b.status = StatusInProgress
	b.checkInTime = &now
	return nil
}

// CompleteWithBalance applies the balance payment plus any extension fee and
// closes out the booking. Returns the amount collected.
func (b *Booking) CompleteWithBalance(extensionFee pricing.Money) (pricing.Money, error) {
	if b.status != StatusInProgress {
		return pricing.Money{}, ErrInvalidTransition
	}

	collected := b.price.BalanceDue.Add(extensionFee)
	b.price.ExtensionFee = extensionFee
	b.price.FinalAmountPaid = b.price.DepositPaid.Add(collected)
	b.price.BalanceDue = pricing.NewMoney(0)
	b.status = StatusCompleted
	return collected, nil
}

// Cancel is permitted only while pending, before any funds are collected.
func (b *Booking) Cancel() error {
	if b.status != StatusPending {
		return ErrInvalidTransition
	}

	b.status = StatusCancelled
	return nil
}

// Override is the staff/admin side channel. It bypasses the transition table
// and optionally stamps check-in/check-out; callers must record the acting
// staff member so overrides stay distinguishable from normal progression.
func (b *Booking) Override(newStatus Status, checkIn, checkOut *time.Time) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus
	}

	b.status = newStatus
	if checkIn != nil {
		b.checkInTime = checkIn
	}
	if checkOut != nil {
		b.checkOutTime = checkOut
	}
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status.HoldsCapacity()
}

func (b *Booking) HasExpired(now time.Time) bool {
	return now.After(b.slot.End())
}

func (b *Booking) ID() uuid.UUID                      { return b.id }
func (b *Booking) UserID() uuid.UUID                  { return b.userID }
func (b *Booking) SpaceTypeID() uuid.UUID             { return b.spaceTypeID }
func (b *Booking) Seats() int32                       { return b.seats }
func (b *Booking) Slot() TimeSlot                     { return b.slot }
func (b *Booking) DurationUnit() pricing.DurationUnit { return b.durationUnit }
func (b *Booking) Status() Status                     { return b.status }
func (b *Booking) Price() PriceBreakdown              { return b.price }
func (b *Booking) Reference() Reference               { return b.reference }
func (b *Booking) SpecialRequest() Note               { return b.specialRequest }
func (b *Booking) CheckInTime() *time.Time            { return b.checkInTime }
func (b *Booking) CheckOutTime() *time.Time           { return b.checkOutTime }
func (b *Booking) CreatedAt() time.Time               { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time               { return b.updatedAt }
