//go:build unit

package payment_test

import (
	"strings"
	"testing"
	"time"

	"deskbook/internal/domain/payment"
	"deskbook/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	bookingID := uuid.New()
	userID := uuid.New()
	paidAt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("settles immediately with a gateway-style id", func(t *testing.T) {
		tx, err := payment.NewTransaction(
			bookingID, userID, payment.TypeDeposit, payment.MethodGCash,
			pricing.NewMoney(8500), paidAt,
		)
		require.NoError(t, err)

		assert.Equal(t, payment.StatusSuccess, tx.Status())
		assert.Equal(t, bookingID, tx.BookingID())
		assert.Equal(t, userID, tx.UserID())
		assert.Equal(t, int64(8500), tx.Amount().Centavos())
		assert.Equal(t, paidAt, tx.PaidAt())

		parts := strings.Split(tx.TransactionID().String(), "-")
		require.Len(t, parts, 3)
		assert.Equal(t, "TXN", parts[0])
		assert.Len(t, parts[2], 7)
	})

	t.Run("zero amount records a transaction", func(t *testing.T) {
		// A fully discounted booking owes nothing but still produces its
		// deposit event.
		tx, err := payment.NewTransaction(
			bookingID, userID, payment.TypeDeposit, payment.MethodCash,
			pricing.NewMoney(0), paidAt,
		)
		require.NoError(t, err)
		assert.True(t, tx.Amount().IsZero())
		assert.Equal(t, payment.StatusSuccess, tx.Status())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name      string
			bookingID uuid.UUID
			txType    payment.Type
			method    payment.Method
			amount    pricing.Money
			errIs     error
		}{
			{
				name:      "nil booking",
				bookingID: uuid.Nil,
				txType:    payment.TypeDeposit, method: payment.MethodCash,
				amount: pricing.NewMoney(100),
				errIs:  payment.ErrInvalidBooking,
			},
			{
				name:      "unknown type",
				bookingID: bookingID,
				txType:    payment.Type("refund"), method: payment.MethodCash,
				amount: pricing.NewMoney(100),
				errIs:  payment.ErrInvalidType,
			},
			{
				name:      "unknown method",
				bookingID: bookingID,
				txType:    payment.TypeBalance, method: payment.Method("cheque"),
				amount: pricing.NewMoney(100),
				errIs:  payment.ErrInvalidMethod,
			},
			{
				name:      "negative amount",
				bookingID: bookingID,
				txType:    payment.TypeDeposit, method: payment.MethodCard,
				amount: pricing.NewMoney(-100),
				errIs:  payment.ErrInvalidAmount,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := payment.NewTransaction(tc.bookingID, userID, tc.txType, tc.method, tc.amount, paidAt)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestPaymentMethodValidity(t *testing.T) {
	for _, m := range []payment.Method{payment.MethodCash, payment.MethodCard, payment.MethodGCash, payment.MethodOnline} {
		assert.True(t, m.IsValid(), m.String())
	}
	assert.False(t, payment.Method("").IsValid())
	assert.False(t, payment.Method("barter").IsValid())
}
