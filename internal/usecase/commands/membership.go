package commands

import (
	"context"
	"time"

	"deskbook/internal/infra"
	"deskbook/internal/pkg/clock"
	"deskbook/internal/pkg/errs"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPlanNotFound      = errs.New("membership plan not found")
	ErrPlanInactive      = errs.New("membership plan is not active")
	ErrAlreadySubscribed = errs.New("user already has an active membership")
	ErrNoMembership      = errs.New("user has no membership to cancel")
)

type SubscribeResult struct {
	PlanID uuid.UUID
	Start  time.Time
	Expiry time.Time
}

type MembershipCommands interface {
	Subscribe(ctx context.Context, userID, planID uuid.UUID) (*SubscribeResult, error)
	CancelMembership(ctx context.Context, userID uuid.UUID) error
}

type membershipUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMembershipUseCase(uow shared.UnitOfWork, clk clock.Clock) MembershipCommands {
	return &membershipUseCaseImpl{uow: uow, clock: clk}
}

func (uc *membershipUseCaseImpl) Subscribe(ctx context.Context, userID, planID uuid.UUID) (*SubscribeResult, error) {
	var result *SubscribeResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		plan, derr := tx.Reads().PlanByID(ctx, planID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrPlanNotFound
			}
			return derr
		}
		if !plan.IsActive {
			return ErrPlanInactive
		}

		usr, derr := tx.Reads().UserByID(ctx, userID)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		if usr.HasActiveMembership(now) {
			return ErrAlreadySubscribed
		}

		expiry := plan.ExpiryFrom(now)
		usr.Subscribe(planID, now, expiry)
		if derr = tx.Users().UpdateMembership(ctx, tx.DB(), usr); derr != nil {
			return derr
		}

		result = &SubscribeResult{PlanID: planID, Start: now, Expiry: expiry}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *membershipUseCaseImpl) CancelMembership(ctx context.Context, userID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		usr, derr := tx.Reads().UserByID(ctx, userID)
		if derr != nil {
			return derr
		}
		if !usr.IsMember() {
			return ErrNoMembership
		}
		usr.CancelMembership()
		return tx.Users().UpdateMembership(ctx, tx.DB(), usr)
	})
}
