package repository

import (
	"context"
	"fmt"
	"strings"

	"deskbook/internal/domain/pricing"
	"deskbook/internal/domain/space"
	"deskbook/internal/infra"
	"deskbook/internal/infra/db"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpaceRepository struct{}

func NewSpaceRepository() *SpaceRepository {
	return &SpaceRepository{}
}

const createSpaceSQL = `
INSERT INTO space_types (
    id, name, description, total_capacity,
    hourly_rate_centavos, half_day_rate_centavos, full_day_rate_centavos,
    weekly_rate_centavos, monthly_rate_centavos,
    member_discount_percent, image_url, is_active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

func (r *SpaceRepository) Create(ctx context.Context, dbtx db.DBTX, s *space.SpaceType) (uuid.UUID, error) {
	rates := s.Rates()

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createSpaceSQL,
		s.ID(),
		s.Name(),
		s.Description(),
		s.TotalCapacity(),
		rateCentavos(rates, pricing.UnitHourly),
		rateCentavos(rates, pricing.UnitHalfDay),
		rateCentavos(rates, pricing.UnitFullDay),
		rateCentavos(rates, pricing.UnitWeekly),
		rateCentavos(rates, pricing.UnitMonthly),
		s.MemberDiscountPercent(),
		s.ImageURL(),
		s.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create space type", err)
	}

	return id, nil
}

// Update builds a SET clause from the non-nil params only, so a partial edit
// never clobbers columns the caller did not name.
func (r *SpaceRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params shared.UpdateSpaceParams) error {
	var (
		sets []string
		args []any
	)
	args = append(args, id)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.TotalCapacity != nil {
		add("total_capacity", *params.TotalCapacity)
	}
	if params.HourlyRateCentavos != nil {
		add("hourly_rate_centavos", *params.HourlyRateCentavos)
	}
	if params.HalfDayRateCentavos != nil {
		add("half_day_rate_centavos", *params.HalfDayRateCentavos)
	}
	if params.FullDayRateCentavos != nil {
		add("full_day_rate_centavos", *params.FullDayRateCentavos)
	}
	if params.WeeklyRateCentavos != nil {
		add("weekly_rate_centavos", *params.WeeklyRateCentavos)
	}
	if params.MonthlyRateCentavos != nil {
		add("monthly_rate_centavos", *params.MonthlyRateCentavos)
	}
	if params.MemberDiscountPercent != nil {
		add("member_discount_percent", *params.MemberDiscountPercent)
	}
	if params.ImageURL != nil {
		add("image_url", *params.ImageURL)
	}
	if params.IsActive != nil {
		add("is_active", *params.IsActive)
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE space_types SET %s WHERE id = $1", strings.Join(sets, ", "))
	tag, err := dbtx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update space type", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("space type not found for update", nil, infra.KindNotFound)
	}

	return nil
}

func rateCentavos(rates pricing.RateTable, unit pricing.DurationUnit) int64 {
	rate, _ := rates.Rate(unit)
	return rate.Centavos()
}
