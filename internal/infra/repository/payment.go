package repository

import (
	"context"

	"deskbook/internal/domain/payment"
	"deskbook/internal/infra"
	"deskbook/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

const createPaymentSQL = `
INSERT INTO payment_transactions (
    id, booking_id, user_id, type, method,
    amount_centavos, transaction_id, status, paid_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

func (r *PaymentRepository) Create(ctx context.Context, dbtx db.DBTX, t *payment.Transaction) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createPaymentSQL,
		t.ID(),
		t.BookingID(),
		t.UserID(),
		t.Type().String(),
		t.Method().String(),
		t.Amount().Centavos(),
		t.TransactionID().String(),
		t.Status().String(),
		t.PaidAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment transaction", err)
	}

	return id, nil
}
