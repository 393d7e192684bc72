package commands

import (
	"context"

	"deskbook/internal/domain/booking"
	"deskbook/internal/domain/payment"
	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/user"
	"deskbook/internal/infra"
	"deskbook/internal/pkg/clock"
	"deskbook/internal/pkg/errs"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentMethod = errs.New("invalid payment method")
	ErrPaymentNotAllowed    = errs.New("payment not allowed in current booking status")
	ErrInvalidExtensionFee  = errs.New("extension fee cannot be negative")
)

type PayDepositRequest struct {
	BookingID uuid.UUID
	Method    string
}

type PayBalanceRequest struct {
	BookingID            uuid.UUID
	Method               string
	ExtensionFeeCentavos int64
}

type PaymentResult struct {
	TransactionID  string
	AmountCentavos int64
	BookingStatus  string
}

type PaymentCommands interface {
	// PayDeposit collects half the total on a pending booking and confirms
	// it, at which point its seats start counting against capacity.
	PayDeposit(ctx context.Context, req PayDepositRequest, actorID uuid.UUID, actorRole user.Role) (*PaymentResult, error)
	// PayBalance collects the remaining balance plus any extension fee on an
	// in-progress booking and completes it.
	PayBalance(ctx context.Context, req PayBalanceRequest, actorID uuid.UUID, actorRole user.Role) (*PaymentResult, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	events  EventPublisher
	metrics Metrics
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock, events EventPublisher, metrics Metrics) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, clock: clk, events: events, metrics: metrics}
}

func (uc *paymentUseCaseImpl) PayDeposit(ctx context.Context, req PayDepositRequest, actorID uuid.UUID, actorRole user.Role) (*PaymentResult, error) {
	method := payment.Method(req.Method)
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	result, entity, err := uc.collect(ctx, req.BookingID, actorID, actorRole, payment.TypeDeposit, method,
		func(b *booking.Booking) (pricing.Money, error) {
			return b.ConfirmDeposit()
		})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentRecorded(payment.TypeDeposit.String())
	uc.events.Publish(ctx, Event{
		Kind:       EventBookingConfirmed,
		BookingID:  entity.ID(),
		Reference:  entity.Reference().String(),
		OccurredAt: uc.clock.Now(),
	})
	return result, nil
}

func (uc *paymentUseCaseImpl) PayBalance(ctx context.Context, req PayBalanceRequest, actorID uuid.UUID, actorRole user.Role) (*PaymentResult, error) {
	method := payment.Method(req.Method)
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}
	extensionFee, err := pricing.NewMoneyFromCentavos(req.ExtensionFeeCentavos)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidExtensionFee)
	}

	result, entity, err := uc.collect(ctx, req.BookingID, actorID, actorRole, payment.TypeBalance, method,
		func(b *booking.Booking) (pricing.Money, error) {
			return b.CompleteWithBalance(extensionFee)
		})
	if err != nil {
		return nil, err
	}

	uc.metrics.PaymentRecorded(payment.TypeBalance.String())
	uc.events.Publish(ctx, Event{
		Kind:       EventBookingCompleted,
		BookingID:  entity.ID(),
		Reference:  entity.Reference().String(),
		OccurredAt: uc.clock.Now(),
	})
	return result, nil
}

// collect locks the booking row, applies the domain-side settlement, and
// writes the transaction plus the updated booking atomically. The row lock
// makes double-paying a race-free conflict instead of a double charge.
func (uc *paymentUseCaseImpl) collect(
	ctx context.Context,
	bookingID, actorID uuid.UUID,
	actorRole user.Role,
	txType payment.Type,
	method payment.Method,
	settle func(*booking.Booking) (pricing.Money, error),
) (*PaymentResult, *booking.Booking, error) {
	var (
		result *PaymentResult
		entity *booking.Booking
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, derr := tx.Reads().BookingForUpdate(ctx, bookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFoundWrite
			}
			return derr
		}
		if b.UserID() != actorID && !actorRole.IsStaff() {
			return ErrBookingNotOwned
		}

		amount, derr := settle(b)
		if derr != nil {
			return errs.Mark(derr, ErrPaymentNotAllowed)
		}

		txn, derr := payment.NewTransaction(b.ID(), b.UserID(), txType, method, amount, uc.clock.Now())
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}
		if _, derr = tx.Payments().Create(ctx, tx.DB(), txn); derr != nil {
			return derr
		}
		if derr = tx.Bookings().Update(ctx, tx.DB(), b); derr != nil {
			return derr
		}

		entity = b
		result = &PaymentResult{
			TransactionID:  txn.TransactionID().String(),
			AmountCentavos: amount.Centavos(),
			BookingStatus:  b.Status().String(),
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, entity, nil
}
