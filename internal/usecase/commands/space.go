package commands

import (
	"context"

	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/space"
	"deskbook/internal/infra"
	"deskbook/internal/pkg/errs"
	"deskbook/internal/pkg/patch"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptySpaceUpdate = errs.New("update contains no fields")
	ErrDuplicateSpace   = errs.New("space type name already exists")
)

type CreateSpaceRequest struct {
	Name                  string
	Description           string
	TotalCapacity         int32
	HourlyRateCentavos    int64
	HalfDayRateCentavos   int64
	FullDayRateCentavos   int64
	WeeklyRateCentavos    int64
	MonthlyRateCentavos   int64
	MemberDiscountPercent float64
	ImageURL              string
}

type CreateSpaceResult struct {
	SpaceTypeID uuid.UUID
}

type SpaceCommands interface {
	CreateSpace(ctx context.Context, req CreateSpaceRequest) (*CreateSpaceResult, error)
	UpdateSpace(ctx context.Context, id uuid.UUID, params shared.UpdateSpaceParams) error
}

type spaceUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewSpaceUseCase(uow shared.UnitOfWork) SpaceCommands {
	return &spaceUseCaseImpl{uow: uow}
}

func (uc *spaceUseCaseImpl) CreateSpace(ctx context.Context, req CreateSpaceRequest) (*CreateSpaceResult, error) {
	rates := pricing.RateTable{
		pricing.UnitHourly:  pricing.NewMoney(req.HourlyRateCentavos),
		pricing.UnitHalfDay: pricing.NewMoney(req.HalfDayRateCentavos),
		pricing.UnitFullDay: pricing.NewMoney(req.FullDayRateCentavos),
		pricing.UnitWeekly:  pricing.NewMoney(req.WeeklyRateCentavos),
		pricing.UnitMonthly: pricing.NewMoney(req.MonthlyRateCentavos),
	}

	entity, err := space.NewSpaceType(
		req.Name, req.Description, req.TotalCapacity, rates, req.MemberDiscountPercent, req.ImageURL,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var result *CreateSpaceResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Spaces().Create(ctx, tx.DB(), entity)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrDuplicateSpace
			}
			return derr
		}
		result = &CreateSpaceResult{SpaceTypeID: id}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *spaceUseCaseImpl) UpdateSpace(ctx context.Context, id uuid.UUID, params shared.UpdateSpaceParams) error {
	if params.IsEmpty() {
		return ErrEmptySpaceUpdate
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, derr := tx.Reads().SpaceTypeForUpdate(ctx, id)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrSpaceNotFound
			}
			return derr
		}

		// Re-check domain bounds against the values as they would land.
		capacity := patch.Coalesce(params.TotalCapacity, current.TotalCapacity())
		if capacity <= 0 {
			return errs.Mark(space.ErrInvalidCapacity, ErrDomainValidation)
		}
		discount := patch.Coalesce(params.MemberDiscountPercent, current.MemberDiscountPercent())
		if discount < 0 || discount > 100 {
			return errs.Mark(space.ErrInvalidDiscount, ErrDomainValidation)
		}

		derr = tx.Spaces().Update(ctx, tx.DB(), id, params)
		if derr != nil && infra.IsKind(derr, infra.KindDuplicateKey) {
			return ErrDuplicateSpace
		}
		return derr
	})
}
