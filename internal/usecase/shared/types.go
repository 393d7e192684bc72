package shared

import (
	"time"

	"github.com/google/uuid"
)

// UpdateSpaceParams enumerates every column an admin may edit. Only non-nil
// fields are applied; request payloads never choose column names.
type UpdateSpaceParams struct {
	Name                  *string
	Description           *string
	TotalCapacity         *int32
	HourlyRateCentavos    *int64
	HalfDayRateCentavos   *int64
	FullDayRateCentavos   *int64
	WeeklyRateCentavos    *int64
	MonthlyRateCentavos   *int64
	MemberDiscountPercent *float64
	ImageURL              *string
	IsActive              *bool
}

func (p UpdateSpaceParams) IsEmpty() bool {
	return p == UpdateSpaceParams{}
}

// MembershipPlan is a read snapshot; plans carry no behavior of their own.
type MembershipPlan struct {
	ID                 uuid.UUID
	Name               string
	DurationType       string // monthly, quarterly, annual
	PriceCentavos      int64
	DiscountPercentage float64
	IsActive           bool
	CreatedAt          time.Time
}

// ExpiryFrom computes the membership expiry for a subscription starting at
// start, per the plan's duration type.
func (p MembershipPlan) ExpiryFrom(start time.Time) time.Time {
	switch p.DurationType {
	case "quarterly":
		return start.AddDate(0, 3, 0)
	case "annual":
		return start.AddDate(1, 0, 0)
	default: // monthly
		return start.AddDate(0, 1, 0)
	}
}
