//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"deskbook/internal/domain/booking"
	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/space"
	"deskbook/internal/domain/user"
	"deskbook/internal/pkg/clock"
	"deskbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type bookingFixture struct {
	uow       *fakeUoW
	publisher *fakePublisher
	metrics   *fakeMetrics
	uc        commands.BookingCommands
	spaceType *space.SpaceType
	userID    uuid.UUID
}

func newBookingFixture(t *testing.T, capacity int32) *bookingFixture {
	t.Helper()

	uow := newFakeUoW()
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}
	clk := clock.NewMockClock(testNow)

	st, err := space.NewSpaceType("Collaboration Room", "", capacity, pricing.RateTable{
		pricing.UnitHourly:  pricing.NewMoney(30000),
		pricing.UnitHalfDay: pricing.NewMoney(100000),
		pricing.UnitFullDay: pricing.NewMoney(180000),
		pricing.UnitWeekly:  pricing.NewMoney(800000),
		pricing.UnitMonthly: pricing.NewMoney(2800000),
	}, 15, "")
	require.NoError(t, err)
	uow.tx.reads.spaceTypes[st.ID()] = st

	email, err := user.NewEmail("customer@example.com")
	require.NoError(t, err)
	customer := user.NewUser(email, "hash", "Customer", "", user.RoleCustomer)
	uow.tx.reads.users[customer.ID()] = customer

	return &bookingFixture{
		uow:       uow,
		publisher: publisher,
		metrics:   metrics,
		uc:        commands.NewBookingUseCase(uow, booking.NewFactory(clk), clk, publisher, metrics),
		spaceType: st,
		userID:    customer.ID(),
	}
}

func (f *bookingFixture) createRequest(seats int32) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		SpaceTypeID:  f.spaceType.ID(),
		Seats:        seats,
		StartTime:    testNow.Add(24 * time.Hour),
		EndTime:      testNow.Add(26 * time.Hour),
		DurationUnit: "hourly",
	}
}

// confirm moves a stored pending booking into confirmed so it holds seats.
func (f *bookingFixture) confirm(t *testing.T, id uuid.UUID) {
	t.Helper()
	b := f.uow.tx.reads.bookings[id]
	require.NotNil(t, b)
	_, err := b.ConfirmDeposit()
	require.NoError(t, err)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending booking", func(t *testing.T) {
		f := newBookingFixture(t, 8)

		result, err := f.uc.CreateBooking(ctx, f.createRequest(3), f.userID)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEqual(t, uuid.Nil, result.BookingID)
		assert.NotEmpty(t, result.Reference)

		stored := f.uow.tx.reads.bookings[result.BookingID]
		require.NotNil(t, stored)
		assert.Equal(t, booking.StatusPending, stored.Status())
		assert.Equal(t, int64(90000), stored.Price().Base.Centavos())
		assert.Equal(t, 1, f.metrics.created)
	})

	t.Run("capacity counts only confirmed seats in the window", func(t *testing.T) {
		f := newBookingFixture(t, 5)

		// A takes 3 seats and pays the deposit.
		resA, err := f.uc.CreateBooking(ctx, f.createRequest(3), f.userID)
		require.NoError(t, err)
		f.confirm(t, resA.BookingID)

		// B wants 3 seats in the same window; only 2 remain.
		_, err = f.uc.CreateBooking(ctx, f.createRequest(3), f.userID)
		require.ErrorIs(t, err, commands.ErrCapacityExceeded)

		var capErr *commands.CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, int32(3), capErr.Requested)
		assert.Equal(t, int32(2), capErr.Available)

		// C's 2 seats still fit.
		_, err = f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)
	})

	t.Run("concurrent confirmed bookings cannot oversell the window", func(t *testing.T) {
		f := newBookingFixture(t, 5)

		firstConfirmed := make(chan struct{})
		errs := make(chan error, 2)
		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			res, err := f.uc.CreateBooking(ctx, f.createRequest(4), f.userID)
			if err == nil {
				f.confirm(t, res.BookingID)
			}
			close(firstConfirmed)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			<-firstConfirmed
			_, err := f.uc.CreateBooking(ctx, f.createRequest(4), f.userID)
			errs <- err
		}()

		wg.Wait()
		close(errs)

		var successes int
		var rejection error
		for err := range errs {
			if err == nil {
				successes++
				continue
			}
			rejection = err
		}
		assert.Equal(t, 1, successes)
		require.ErrorIs(t, rejection, commands.ErrCapacityExceeded)

		var capErr *commands.CapacityError
		require.ErrorAs(t, rejection, &capErr)
		assert.Equal(t, int32(4), capErr.Requested)
		assert.Equal(t, int32(1), capErr.Available)
	})

	t.Run("pending bookings hold no seats", func(t *testing.T) {
		f := newBookingFixture(t, 5)

		_, err := f.uc.CreateBooking(ctx, f.createRequest(5), f.userID)
		require.NoError(t, err)

		// The first booking was never paid, so the full window is still open.
		_, err = f.uc.CreateBooking(ctx, f.createRequest(5), f.userID)
		require.NoError(t, err)
	})

	t.Run("non-overlapping windows do not contend", func(t *testing.T) {
		f := newBookingFixture(t, 5)

		resA, err := f.uc.CreateBooking(ctx, f.createRequest(5), f.userID)
		require.NoError(t, err)
		f.confirm(t, resA.BookingID)

		// Back-to-back window starting exactly where A ends.
		req := f.createRequest(5)
		req.StartTime = testNow.Add(26 * time.Hour)
		req.EndTime = testNow.Add(28 * time.Hour)
		_, err = f.uc.CreateBooking(ctx, req, f.userID)
		require.NoError(t, err)
	})

	t.Run("member discount applies only with an active membership", func(t *testing.T) {
		f := newBookingFixture(t, 8)

		member := f.uow.tx.reads.users[f.userID]
		member.Subscribe(uuid.New(), testNow, testNow.AddDate(0, 1, 0))

		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)

		price := f.uow.tx.reads.bookings[result.BookingID].Price()
		assert.Equal(t, int64(60000), price.Base.Centavos())
		assert.Equal(t, int64(9000), price.Discount.Centavos())
		assert.Equal(t, int64(51000), price.Total.Centavos())
	})

	t.Run("expired membership earns no discount", func(t *testing.T) {
		f := newBookingFixture(t, 8)

		member := f.uow.tx.reads.users[f.userID]
		member.Subscribe(uuid.New(), testNow.AddDate(0, -2, 0), testNow.AddDate(0, -1, 0))

		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)
		assert.True(t, f.uow.tx.reads.bookings[result.BookingID].Price().Discount.IsZero())
	})

	t.Run("regenerates the reference on insert collision", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		f.uow.tx.bookings.duplicateInserts = 2

		result, err := f.uc.CreateBooking(ctx, f.createRequest(1), f.userID)
		require.NoError(t, err)
		assert.Equal(t, 3, f.uow.tx.bookings.createCalls)
		assert.NotEmpty(t, result.Reference)
	})

	t.Run("gives up after exhausting reference retries", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		f.uow.tx.bookings.duplicateInserts = 3

		_, err := f.uc.CreateBooking(ctx, f.createRequest(1), f.userID)
		assert.ErrorIs(t, err, commands.ErrReferenceExhausted)
	})

	t.Run("request validation", func(t *testing.T) {
		f := newBookingFixture(t, 8)

		t.Run("inverted time slot", func(t *testing.T) {
			req := f.createRequest(1)
			req.StartTime, req.EndTime = req.EndTime, req.StartTime
			_, err := f.uc.CreateBooking(ctx, req, f.userID)
			assert.ErrorIs(t, err, commands.ErrInvalidTimeSlot)
		})

		t.Run("unknown space type", func(t *testing.T) {
			req := f.createRequest(1)
			req.SpaceTypeID = uuid.New()
			_, err := f.uc.CreateBooking(ctx, req, f.userID)
			assert.ErrorIs(t, err, commands.ErrSpaceNotFound)
		})

		t.Run("seats beyond total capacity", func(t *testing.T) {
			_, err := f.uc.CreateBooking(ctx, f.createRequest(9), f.userID)
			assert.ErrorIs(t, err, commands.ErrCapacityExceeded)
		})

		t.Run("unknown duration unit falls back to hourly", func(t *testing.T) {
			req := f.createRequest(1)
			req.DurationUnit = "fortnightly"
			result, err := f.uc.CreateBooking(ctx, req, f.userID)
			require.NoError(t, err)
			assert.Equal(t, pricing.UnitHourly, f.uow.tx.reads.bookings[result.BookingID].DurationUnit())
		})
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels a pending booking", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)

		err = f.uc.CancelBooking(ctx, result.BookingID, f.userID, user.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, f.uow.tx.reads.bookings[result.BookingID].Status())
		assert.Equal(t, 1, f.metrics.cancelled)
	})

	t.Run("staff can cancel another user's booking", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)

		err = f.uc.CancelBooking(ctx, result.BookingID, uuid.New(), user.RoleStaff)
		require.NoError(t, err)
	})

	t.Run("strangers cannot cancel", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)

		err = f.uc.CancelBooking(ctx, result.BookingID, uuid.New(), user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrBookingNotOwned)
	})

	t.Run("confirmed bookings cannot be cancelled", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)
		f.confirm(t, result.BookingID)

		err = f.uc.CancelBooking(ctx, result.BookingID, f.userID, user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrCancelNotAllowed)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		err := f.uc.CancelBooking(ctx, uuid.New(), f.userID, user.RoleCustomer)
		assert.ErrorIs(t, err, commands.ErrBookingNotFoundWrite)
	})
}

func TestOverrideStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("forces any valid status and stamps check times", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)

		checkIn := testNow.Add(24 * time.Hour)
		checkOut := testNow.Add(26 * time.Hour)
		err = f.uc.OverrideStatus(ctx, result.BookingID, commands.OverrideStatusRequest{
			Status:       "completed",
			CheckInTime:  &checkIn,
			CheckOutTime: &checkOut,
		}, uuid.New())
		require.NoError(t, err)

		stored := f.uow.tx.reads.bookings[result.BookingID]
		assert.Equal(t, booking.StatusCompleted, stored.Status())
		require.NotNil(t, stored.CheckInTime())
		assert.Equal(t, checkIn, *stored.CheckInTime())
	})

	t.Run("publishes an event for notification-worthy statuses", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)

		err = f.uc.OverrideStatus(ctx, result.BookingID, commands.OverrideStatusRequest{Status: "cancelled"}, uuid.New())
		require.NoError(t, err)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, commands.EventBookingCancelled, f.publisher.events[0].Kind)
		assert.Equal(t, result.BookingID, f.publisher.events[0].BookingID)
	})

	t.Run("confirmed to in_progress checks in at the current time", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)
		f.confirm(t, result.BookingID)

		err = f.uc.OverrideStatus(ctx, result.BookingID, commands.OverrideStatusRequest{Status: "in_progress"}, uuid.New())
		require.NoError(t, err)

		stored := f.uow.tx.reads.bookings[result.BookingID]
		assert.Equal(t, booking.StatusInProgress, stored.Status())
		require.NotNil(t, stored.CheckInTime())
		assert.Equal(t, testNow, *stored.CheckInTime())
	})

	t.Run("in_progress override publishes nothing", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		result, err := f.uc.CreateBooking(ctx, f.createRequest(2), f.userID)
		require.NoError(t, err)

		err = f.uc.OverrideStatus(ctx, result.BookingID, commands.OverrideStatusRequest{Status: "in_progress"}, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		f := newBookingFixture(t, 8)
		err := f.uc.OverrideStatus(ctx, uuid.New(), commands.OverrideStatusRequest{Status: "archived"}, uuid.New())
		assert.ErrorIs(t, err, commands.ErrInvalidStatusOverride)
	})
}
