package readstore

import (
	"context"

	"deskbook/internal/infra"
	"deskbook/internal/infra/db"
	"deskbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const findBookingByIDSQL = `
SELECT
    b.id, b.reference, b.user_id, u.email, b.space_type_id, st.name,
    b.seats, b.start_time, b.end_time, b.duration_unit, b.status,
    b.base_centavos, b.discount_centavos, b.total_centavos,
    b.deposit_paid_centavos, b.balance_due_centavos,
    b.final_amount_paid_centavos, b.extension_fee_centavos,
    b.special_request, b.check_in_time, b.check_out_time,
    b.created_at, b.updated_at
FROM bookings b
JOIN users u ON u.id = b.user_id
JOIN space_types st ON st.id = b.space_type_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, findBookingByIDSQL, id)

	view, err := scanBookingView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return view, nil
}

const listBookingsByUserSQL = `
SELECT
    b.id, b.reference, b.space_type_id, st.name, b.seats,
    b.start_time, b.end_time, b.status, b.total_centavos, b.created_at
FROM bookings b
JOIN space_types st ON st.id = b.space_type_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC`

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

const listAllBookingsSQL = `
SELECT
    b.id, b.reference, b.space_type_id, st.name, b.seats,
    b.start_time, b.end_time, b.status, b.total_centavos, b.created_at
FROM bookings b
JOIN space_types st ON st.id = b.space_type_id
WHERE ($1::text IS NULL OR b.status = $1)
  AND ($2::timestamptz IS NULL OR b.start_time >= $2)
  AND ($3::timestamptz IS NULL OR b.start_time < $3)
ORDER BY b.created_at DESC`

func (r *BookingReadStore) FindAll(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listAllBookingsSQL, filter.Status, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.Reference, &v.UserID, &v.UserEmail, &v.SpaceTypeID, &v.SpaceName,
		&v.Seats, &v.StartTime, &v.EndTime, &v.DurationUnit, &v.Status,
		&v.BaseCentavos, &v.DiscountCentavos, &v.TotalCentavos,
		&v.DepositPaid, &v.BalanceDue, &v.FinalAmountPaid, &v.ExtensionFee,
		&v.SpecialRequest, &v.CheckInTime, &v.CheckOutTime,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(
			&item.ID, &item.Reference, &item.SpaceTypeID, &item.SpaceName, &item.Seats,
			&item.StartTime, &item.EndTime, &item.Status, &item.TotalCentavos, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}

	return items, nil
}
