package readstore

import (
	"context"

	"deskbook/internal/infra"
	"deskbook/internal/infra/db"
	"deskbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

const paymentSelectSQL = `
SELECT
    p.id, p.booking_id, b.reference, st.name, p.user_id,
    p.type, p.method, p.amount_centavos, p.transaction_id,
    p.status, p.paid_at, p.created_at
FROM payment_transactions p
JOIN bookings b ON b.id = p.booking_id
JOIN space_types st ON st.id = b.space_type_id`

const findPaymentsByBookingSQL = paymentSelectSQL + `
WHERE p.booking_id = $1
ORDER BY p.paid_at`

func (r *PaymentReadStore) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := r.db.Query(ctx, findPaymentsByBookingSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments by booking", err)
	}
	defer rows.Close()

	return scanPaymentViews(rows)
}

const findPaymentsByUserSQL = paymentSelectSQL + `
WHERE p.user_id = $1
ORDER BY p.paid_at DESC`

func (r *PaymentReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := r.db.Query(ctx, findPaymentsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments by user", err)
	}
	defer rows.Close()

	return scanPaymentViews(rows)
}

func scanPaymentViews(rows pgx.Rows) ([]*queries.PaymentView, error) {
	views := make([]*queries.PaymentView, 0)
	for rows.Next() {
		var v queries.PaymentView
		err := rows.Scan(
			&v.ID, &v.BookingID, &v.Reference, &v.SpaceName, &v.UserID,
			&v.Type, &v.Method, &v.AmountCentavos, &v.TransactionID,
			&v.Status, &v.PaidAt, &v.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}

	return views, nil
}
