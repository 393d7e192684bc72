package repository

import (
	"context"

	"deskbook/internal/domain/booking"
	"deskbook/internal/infra"
	"deskbook/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, reference, user_id, space_type_id, seats,
    start_time, end_time, duration_unit, status,
    base_centavos, discount_centavos, total_centavos,
    deposit_paid_centavos, balance_due_centavos,
    final_amount_paid_centavos, extension_fee_centavos,
    special_request, check_in_time, check_out_time
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9,
    $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
)
RETURNING id`

// Create inserts the booking. When running inside a transaction the insert is
// wrapped in a savepoint: a unique violation on the reference would otherwise
// abort the whole transaction (25P02 on every later statement), making the
// caller's regenerate-and-retry impossible.
func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	tx, ok := dbtx.(pgx.Tx)
	if !ok {
		return r.insert(ctx, dbtx, b)
	}

	sp, err := tx.Begin(ctx)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to open savepoint", err)
	}
	id, err := r.insert(ctx, sp, b)
	if err != nil {
		_ = sp.Rollback(ctx)
		return uuid.Nil, err
	}
	if err := sp.Commit(ctx); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to release savepoint", err)
	}
	return id, nil
}

func (r *BookingRepository) insert(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	price := b.Price()

	var specialRequest *string
	if !b.SpecialRequest().IsEmpty() {
		s := b.SpecialRequest().String()
		specialRequest = &s
	}

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.Reference().String(),
		b.UserID(),
		b.SpaceTypeID(),
		b.Seats(),
		b.Slot().Start(),
		b.Slot().End(),
		b.DurationUnit().String(),
		b.Status().String(),
		price.Base.Centavos(),
		price.Discount.Centavos(),
		price.Total.Centavos(),
		price.DepositPaid.Centavos(),
		price.BalanceDue.Centavos(),
		price.FinalAmountPaid.Centavos(),
		price.ExtensionFee.Centavos(),
		specialRequest,
		b.CheckInTime(),
		b.CheckOutTime(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

const updateBookingSQL = `
UPDATE bookings SET
    status = $2,
    deposit_paid_centavos = $3,
    balance_due_centavos = $4,
    final_amount_paid_centavos = $5,
    extension_fee_centavos = $6,
    check_in_time = $7,
    check_out_time = $8,
    updated_at = NOW()
WHERE id = $1`

// Update persists the mutable slice of a booking: lifecycle status, payment
// progress, and check-in/out stamps. Identity, window, and quoted amounts are
// immutable after creation.
func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	price := b.Price()

	tag, err := dbtx.Exec(ctx, updateBookingSQL,
		b.ID(),
		b.Status().String(),
		price.DepositPaid.Centavos(),
		price.BalanceDue.Centavos(),
		price.FinalAmountPaid.Centavos(),
		price.ExtensionFee.Centavos(),
		b.CheckInTime(),
		b.CheckOutTime(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found for update", nil, infra.KindNotFound)
	}

	return nil
}
