package request

import (
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/shared"
)

type CreateSpaceRequest struct {
	Name                  string  `json:"name" binding:"required"`
	Description           string  `json:"description"`
	TotalCapacity         int32   `json:"total_capacity" binding:"required,min=1"`
	HourlyRateCentavos    int64   `json:"hourly_rate_centavos" binding:"min=0"`
	HalfDayRateCentavos   int64   `json:"half_day_rate_centavos" binding:"min=0"`
	FullDayRateCentavos   int64   `json:"full_day_rate_centavos" binding:"min=0"`
	WeeklyRateCentavos    int64   `json:"weekly_rate_centavos" binding:"min=0"`
	MonthlyRateCentavos   int64   `json:"monthly_rate_centavos" binding:"min=0"`
	MemberDiscountPercent float64 `json:"member_discount_percent" binding:"min=0,max=100"`
	ImageURL              string  `json:"image_url"`
}

func (r CreateSpaceRequest) ToCommand() commands.CreateSpaceRequest {
	return commands.CreateSpaceRequest{
		Name:                  r.Name,
		Description:           r.Description,
		TotalCapacity:         r.TotalCapacity,
		HourlyRateCentavos:    r.HourlyRateCentavos,
		HalfDayRateCentavos:   r.HalfDayRateCentavos,
		FullDayRateCentavos:   r.FullDayRateCentavos,
		WeeklyRateCentavos:    r.WeeklyRateCentavos,
		MonthlyRateCentavos:   r.MonthlyRateCentavos,
		MemberDiscountPercent: r.MemberDiscountPercent,
		ImageURL:              r.ImageURL,
	}
}

type UpdateSpaceRequest struct {
	Name                  *string  `json:"name,omitempty"`
	Description           *string  `json:"description,omitempty"`
	TotalCapacity         *int32   `json:"total_capacity,omitempty"`
	HourlyRateCentavos    *int64   `json:"hourly_rate_centavos,omitempty"`
	HalfDayRateCentavos   *int64   `json:"half_day_rate_centavos,omitempty"`
	FullDayRateCentavos   *int64   `json:"full_day_rate_centavos,omitempty"`
	WeeklyRateCentavos    *int64   `json:"weekly_rate_centavos,omitempty"`
	MonthlyRateCentavos   *int64   `json:"monthly_rate_centavos,omitempty"`
	MemberDiscountPercent *float64 `json:"member_discount_percent,omitempty"`
	ImageURL              *string  `json:"image_url,omitempty"`
	IsActive              *bool    `json:"is_active,omitempty"`
}

func (r UpdateSpaceRequest) ToParams() shared.UpdateSpaceParams {
	return shared.UpdateSpaceParams{
		Name:                  r.Name,
		Description:           r.Description,
		TotalCapacity:         r.TotalCapacity,
		HourlyRateCentavos:    r.HourlyRateCentavos,
		HalfDayRateCentavos:   r.HalfDayRateCentavos,
		FullDayRateCentavos:   r.FullDayRateCentavos,
		WeeklyRateCentavos:    r.WeeklyRateCentavos,
		MonthlyRateCentavos:   r.MonthlyRateCentavos,
		MemberDiscountPercent: r.MemberDiscountPercent,
		ImageURL:              r.ImageURL,
		IsActive:              r.IsActive,
	}
}
