package queries

import (
	"context"

	"deskbook/internal/domain/user"
	"deskbook/internal/infra"
	"deskbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPaymentAccessDenied = errs.New("not allowed to view these payments")

type PaymentReadStore interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*PaymentView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*PaymentView, error)
}

type PaymentQueries interface {
	ListByBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole user.Role) ([]*PaymentView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	store    PaymentReadStore
	bookings BookingReadStore
}

func NewPaymentQueries(store PaymentReadStore, bookings BookingReadStore) PaymentQueries {
	return &paymentQueriesImpl{store: store, bookings: bookings}
}

func (q *paymentQueriesImpl) ListByBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole user.Role) ([]*PaymentView, error) {
	booking, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.UserID != requesterID && !requesterRole.IsStaff() {
		return nil, ErrPaymentAccessDenied
	}
	return q.store.FindByBookingID(ctx, bookingID)
}

func (q *paymentQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*PaymentView, error) {
	return q.store.FindByUserID(ctx, userID)
}
