package uow

import (
	"context"
	"time"

	"deskbook/internal/domain/booking"
	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/space"
	"deskbook/internal/domain/user"
	"deskbook/internal/infra"
	"deskbook/internal/infra/db"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// commandReads loads full domain entities for the write side. Bound to a
// transaction it sees (and can lock) uncommitted work in the same tx; bound
// to the pool it reads committed state only.
type commandReads struct {
	dbtx db.DBTX
}

const spaceTypeEntitySQL = `
SELECT id, name, description, total_capacity,
       hourly_rate_centavos, half_day_rate_centavos, full_day_rate_centavos,
       weekly_rate_centavos, monthly_rate_centavos,
       member_discount_percent, image_url, is_active, created_at, updated_at
FROM space_types
WHERE id = $1`

func (r *commandReads) SpaceTypeByID(ctx context.Context, id uuid.UUID) (*space.SpaceType, error) {
	return scanSpaceType(r.dbtx.QueryRow(ctx, spaceTypeEntitySQL, id))
}

// SpaceTypeForUpdate locks the row until the transaction ends. Every
// capacity-admitting write goes through this lock, so concurrent
// check-then-insert sequences on the same space type serialize.
func (r *commandReads) SpaceTypeForUpdate(ctx context.Context, id uuid.UUID) (*space.SpaceType, error) {
	return scanSpaceType(r.dbtx.QueryRow(ctx, spaceTypeEntitySQL+" FOR UPDATE", id))
}

const committedSeatsSQL = `
SELECT COALESCE(SUM(seats), 0)::int
FROM bookings
WHERE space_type_id = $1
  AND status IN ('confirmed', 'in_progress')
  AND start_time < $3
  AND end_time > $2`

func (r *commandReads) CommittedSeats(ctx context.Context, spaceTypeID uuid.UUID, start, end time.Time) (int32, error) {
	var committed int32
	err := r.dbtx.QueryRow(ctx, committedSeatsSQL, spaceTypeID, start, end).Scan(&committed)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum committed seats", err)
	}
	return committed, nil
}

const bookingEntitySQL = `
SELECT id, user_id, space_type_id, seats, start_time, end_time, duration_unit,
       status, base_centavos, discount_centavos, total_centavos,
       deposit_paid_centavos, balance_due_centavos,
       final_amount_paid_centavos, extension_fee_centavos,
       reference, special_request, check_in_time, check_out_time,
       created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return scanBooking(r.dbtx.QueryRow(ctx, bookingEntitySQL, id))
}

func (r *commandReads) BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return scanBooking(r.dbtx.QueryRow(ctx, bookingEntitySQL+" FOR UPDATE", id))
}

const userEntitySQL = `
SELECT id, email, password_hash, name, COALESCE(phone, ''), role,
       is_member, membership_plan_id, membership_start, membership_expiry,
       created_at, updated_at
FROM users
WHERE id = $1`

func (r *commandReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var (
		uid              uuid.UUID
		emailRaw         string
		passwordHash     string
		name             string
		phone            string
		roleRaw          string
		isMember         bool
		membershipPlanID *uuid.UUID
		membershipStart  *time.Time
		membershipExpiry *time.Time
		createdAt        time.Time
		updatedAt        time.Time
	)
	err := r.dbtx.QueryRow(ctx, userEntitySQL, id).Scan(
		&uid, &emailRaw, &passwordHash, &name, &phone, &roleRaw,
		&isMember, &membershipPlanID, &membershipStart, &membershipExpiry,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load user", err)
	}

	email, err := user.NewEmail(emailRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user email is invalid", err)
	}
	role, err := user.NewRole(roleRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user role is invalid", err)
	}

	return user.ReconstructUser(
		uid, email, passwordHash, name, phone, role,
		isMember, membershipPlanID, membershipStart, membershipExpiry,
		createdAt, updatedAt,
	), nil
}

const planEntitySQL = `
SELECT id, name, duration_type, price_centavos, discount_percentage, is_active, created_at
FROM membership_plans
WHERE id = $1`

func (r *commandReads) PlanByID(ctx context.Context, id uuid.UUID) (*shared.MembershipPlan, error) {
	var p shared.MembershipPlan
	err := r.dbtx.QueryRow(ctx, planEntitySQL, id).Scan(
		&p.ID, &p.Name, &p.DurationType, &p.PriceCentavos, &p.DiscountPercentage, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("membership plan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load membership plan", err)
	}
	return &p, nil
}

func scanSpaceType(row pgx.Row) (*space.SpaceType, error) {
	var (
		id                    uuid.UUID
		name                  string
		description           string
		totalCapacity         int32
		hourly                int64
		halfDay               int64
		fullDay               int64
		weekly                int64
		monthly               int64
		memberDiscountPercent float64
		imageURL              string
		isActive              bool
		createdAt             time.Time
		updatedAt             time.Time
	)
	err := row.Scan(
		&id, &name, &description, &totalCapacity,
		&hourly, &halfDay, &fullDay, &weekly, &monthly,
		&memberDiscountPercent, &imageURL, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("space type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load space type", err)
	}

	rates := pricing.RateTable{
		pricing.UnitHourly:  pricing.NewMoney(hourly),
		pricing.UnitHalfDay: pricing.NewMoney(halfDay),
		pricing.UnitFullDay: pricing.NewMoney(fullDay),
		pricing.UnitWeekly:  pricing.NewMoney(weekly),
		pricing.UnitMonthly: pricing.NewMoney(monthly),
	}

	return space.ReconstructSpaceType(
		id, name, description, totalCapacity, rates,
		memberDiscountPercent, imageURL, isActive, createdAt, updatedAt,
	), nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id             uuid.UUID
		userID         uuid.UUID
		spaceTypeID    uuid.UUID
		seats          int32
		startTime      time.Time
		endTime        time.Time
		durationUnit   string
		status         string
		base           int64
		discount       int64
		total          int64
		depositPaid    int64
		balanceDue     int64
		finalPaid      int64
		extensionFee   int64
		reference      string
		specialRequest *string
		checkInTime    *time.Time
		checkOutTime   *time.Time
		createdAt      time.Time
		updatedAt      time.Time
	)
	err := row.Scan(
		&id, &userID, &spaceTypeID, &seats, &startTime, &endTime, &durationUnit,
		&status, &base, &discount, &total,
		&depositPaid, &balanceDue, &finalPaid, &extensionFee,
		&reference, &specialRequest, &checkInTime, &checkOutTime,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking", err)
	}

	slot, err := booking.NewTimeSlot(startTime, endTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking window is invalid", err)
	}

	price := booking.PriceBreakdown{
		Base:            pricing.NewMoney(base),
		Discount:        pricing.NewMoney(discount),
		Total:           pricing.NewMoney(total),
		DepositPaid:     pricing.NewMoney(depositPaid),
		BalanceDue:      pricing.NewMoney(balanceDue),
		FinalAmountPaid: pricing.NewMoney(finalPaid),
		ExtensionFee:    pricing.NewMoney(extensionFee),
	}

	var note booking.Note
	if specialRequest != nil {
		note = booking.NewNote(*specialRequest)
	}

	return booking.ReconstructBooking(
		id, userID, spaceTypeID, seats, slot,
		pricing.DurationUnit(durationUnit), booking.Status(status),
		price, booking.Reference(reference), note,
		checkInTime, checkOutTime, createdAt, updatedAt,
	), nil
}
