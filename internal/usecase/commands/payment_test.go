//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"deskbook/internal/domain/booking"
	"deskbook/internal/domain/payment"
	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/space"
	"deskbook/internal/domain/user"
	"deskbook/internal/pkg/clock"
	"deskbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	*bookingFixture
	payments  *fakePaymentRepo
	uc        commands.PaymentCommands
	bookingID uuid.UUID
}

// newPaymentFixture creates a pending booking worth 900.00 pesos total
// (3 seats at 300.00/hour, no discount).
func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	bf := newBookingFixture(t, 8)
	result, err := bf.uc.CreateBooking(context.Background(), bf.createRequest(3), bf.userID)
	require.NoError(t, err)

	return &paymentFixture{
		bookingFixture: bf,
		payments:       bf.uow.tx.payments,
		uc: commands.NewPaymentUseCase(
			bf.uow, clock.NewMockClock(testNow), bf.publisher, bf.metrics,
		),
		bookingID: result.BookingID,
	}
}

func (f *paymentFixture) booking() *booking.Booking {
	return f.uow.tx.reads.bookings[f.bookingID]
}

func TestPayDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("collects half the total and confirms the booking", func(t *testing.T) {
		f := newPaymentFixture(t)

		result, err := f.uc.PayDeposit(ctx, commands.PayDepositRequest{
			BookingID: f.bookingID, Method: "gcash",
		}, f.userID, user.RoleCustomer)
		require.NoError(t, err)

		assert.Equal(t, int64(45000), result.AmountCentavos)
		assert.Equal(t, "confirmed", result.BookingStatus)
		assert.NotEmpty(t, result.TransactionID)

		assert.Equal(t, booking.StatusConfirmed, f.booking().Status())
		assert.Equal(t, int64(45000), f.booking().Price().BalanceDue.Centavos())

		require.Len(t, f.payments.created, 1)
		assert.Equal(t, payment.TypeDeposit, f.payments.created[0].Type())
		assert.Equal(t, payment.StatusSuccess, f.payments.created[0].Status())

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, commands.EventBookingConfirmed, f.publisher.events[0].Kind)
		assert.Equal(t, []string{"deposit"}, f.metrics.payments)
	})

	t.Run("zero-total booking still confirms", func(t *testing.T) {
		// Free community spaces and 100% member discounts quote a zero
		// deposit; the lifecycle must advance on a zero-amount transaction.
		bf := newBookingFixture(t, 8)
		free, err := space.NewSpaceType("Community Corner", "", 8, pricing.RateTable{
			pricing.UnitHourly:  pricing.NewMoney(0),
			pricing.UnitHalfDay: pricing.NewMoney(0),
			pricing.UnitFullDay: pricing.NewMoney(0),
			pricing.UnitWeekly:  pricing.NewMoney(0),
			pricing.UnitMonthly: pricing.NewMoney(0),
		}, 0, "")
		require.NoError(t, err)
		bf.uow.tx.reads.spaceTypes[free.ID()] = free

		created, err := bf.uc.CreateBooking(ctx, commands.CreateBookingRequest{
			SpaceTypeID:  free.ID(),
			Seats:        2,
			StartTime:    testNow.Add(24 * time.Hour),
			EndTime:      testNow.Add(26 * time.Hour),
			DurationUnit: "hourly",
		}, bf.userID)
		require.NoError(t, err)

		uc := commands.NewPaymentUseCase(bf.uow, clock.NewMockClock(testNow), bf.publisher, bf.metrics)
		result, err := uc.PayDeposit(ctx, commands.PayDepositRequest{
			BookingID: created.BookingID, Method: "cash",
		}, bf.userID, user.RoleCustomer)
		require.NoError(t, err)

		assert.Zero(t, result.AmountCentavos)
		assert.Equal(t, "confirmed", result.BookingStatus)
		assert.Equal(t, booking.StatusConfirmed, bf.uow.tx.reads.bookings[created.BookingID].Status())

		require.Len(t, bf.uow.tx.payments.created, 1)
		assert.True(t, bf.uow.tx.payments.created[0].Amount().IsZero())
	})

	t.Run("paying the deposit twice conflicts", func(t *testing.T) {
		f := newPaymentFixture(t)
		req := commands.PayDepositRequest{BookingID: f.bookingID, Method: "cash"}

		_, err := f.uc.PayDeposit(ctx, req, f.userID, user.RoleCustomer)
		require.NoError(t, err)

		_, err = f.uc.PayDeposit(ctx, req, f.userID, user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrPaymentNotAllowed)
		assert.Len(t, f.payments.created, 1, "no second transaction row")
	})

	t.Run("owner-or-staff check", func(t *testing.T) {
		f := newPaymentFixture(t)
		req := commands.PayDepositRequest{BookingID: f.bookingID, Method: "card"}

		_, err := f.uc.PayDeposit(ctx, req, uuid.New(), user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrBookingNotOwned)

		// Staff can collect at the front desk on the customer's behalf.
		_, err = f.uc.PayDeposit(ctx, req, uuid.New(), user.RoleStaff)
		require.NoError(t, err)
	})

	t.Run("invalid method", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.PayDeposit(ctx, commands.PayDepositRequest{
			BookingID: f.bookingID, Method: "cheque",
		}, f.userID, user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrInvalidPaymentMethod)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newPaymentFixture(t)
		_, err := f.uc.PayDeposit(ctx, commands.PayDepositRequest{
			BookingID: uuid.New(), Method: "cash",
		}, f.userID, user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrBookingNotFoundWrite)
	})
}

func TestPayBalance(t *testing.T) {
	ctx := context.Background()

	// prepare walks the booking to in_progress with the deposit collected.
	prepare := func(t *testing.T) *paymentFixture {
		t.Helper()
		f := newPaymentFixture(t)
		_, err := f.uc.PayDeposit(ctx, commands.PayDepositRequest{
			BookingID: f.bookingID, Method: "gcash",
		}, f.userID, user.RoleCustomer)
		require.NoError(t, err)
		require.NoError(t, f.booking().CheckIn(testNow.Add(24*time.Hour)))
		return f
	}

	t.Run("collects the balance plus extension fee and completes", func(t *testing.T) {
		f := prepare(t)

		result, err := f.uc.PayBalance(ctx, commands.PayBalanceRequest{
			BookingID: f.bookingID, Method: "cash", ExtensionFeeCentavos: 5000,
		}, f.userID, user.RoleCustomer)
		require.NoError(t, err)

		assert.Equal(t, int64(50000), result.AmountCentavos)
		assert.Equal(t, "completed", result.BookingStatus)

		price := f.booking().Price()
		assert.True(t, price.BalanceDue.IsZero())
		assert.Equal(t, int64(95000), price.FinalAmountPaid.Centavos())
		assert.Equal(t, int64(5000), price.ExtensionFee.Centavos())

		require.Len(t, f.payments.created, 2)
		assert.Equal(t, payment.TypeBalance, f.payments.created[1].Type())

		require.Len(t, f.publisher.events, 2)
		assert.Equal(t, commands.EventBookingCompleted, f.publisher.events[1].Kind)
	})

	t.Run("zero extension fee is fine", func(t *testing.T) {
		f := prepare(t)

		result, err := f.uc.PayBalance(ctx, commands.PayBalanceRequest{
			BookingID: f.bookingID, Method: "card",
		}, f.userID, user.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, int64(45000), result.AmountCentavos)
	})

	t.Run("negative extension fee", func(t *testing.T) {
		f := prepare(t)
		_, err := f.uc.PayBalance(ctx, commands.PayBalanceRequest{
			BookingID: f.bookingID, Method: "cash", ExtensionFeeCentavos: -1,
		}, f.userID, user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrInvalidExtensionFee)
	})

	t.Run("balance requires an in-progress booking", func(t *testing.T) {
		f := newPaymentFixture(t) // still pending
		_, err := f.uc.PayBalance(ctx, commands.PayBalanceRequest{
			BookingID: f.bookingID, Method: "cash",
		}, f.userID, user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrPaymentNotAllowed)
	})
}
