package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	Reference        string     `json:"reference"`
	UserID           uuid.UUID  `json:"user_id"`
	UserEmail        string     `json:"user_email"`
	SpaceTypeID      uuid.UUID  `json:"space_type_id"`
	SpaceName        string     `json:"space_name"`
	Seats            int32      `json:"seats"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	DurationUnit     string     `json:"duration_unit"`
	Status           string     `json:"status"`
	BaseCentavos     int64      `json:"base_centavos"`
	DiscountCentavos int64      `json:"discount_centavos"`
	TotalCentavos    int64      `json:"total_centavos"`
	DepositPaid      int64      `json:"deposit_paid_centavos"`
	BalanceDue       int64      `json:"balance_due_centavos"`
	FinalAmountPaid  int64      `json:"final_amount_paid_centavos"`
	ExtensionFee     int64      `json:"extension_fee_centavos"`
	SpecialRequest   *string    `json:"special_request,omitempty"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	SpaceTypeID   uuid.UUID `json:"space_type_id"`
	SpaceName     string    `json:"space_name"`
	Seats         int32     `json:"seats"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	TotalCentavos int64     `json:"total_centavos"`
	CreatedAt     time.Time `json:"created_at"`
}

type SpaceTypeView struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	TotalCapacity         int32     `json:"total_capacity"`
	HourlyRateCentavos    int64     `json:"hourly_rate_centavos"`
	HalfDayRateCentavos   int64     `json:"half_day_rate_centavos"`
	FullDayRateCentavos   int64     `json:"full_day_rate_centavos"`
	WeeklyRateCentavos    int64     `json:"weekly_rate_centavos"`
	MonthlyRateCentavos   int64     `json:"monthly_rate_centavos"`
	MemberDiscountPercent float64   `json:"member_discount_percent"`
	ImageURL              string    `json:"image_url,omitempty"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// AvailabilityView is the checkAvailability result shape.
type AvailabilityView struct {
	TotalCapacity  int32 `json:"total_capacity"`
	BookedSeats    int32 `json:"booked_seats"`
	AvailableSeats int32 `json:"available_seats"`
	RequestedSeats int32 `json:"requested_seats"`
	IsAvailable    bool  `json:"is_available"`
}

type PaymentView struct {
	ID             uuid.UUID `json:"id"`
	BookingID      uuid.UUID `json:"booking_id"`
	Reference      string    `json:"booking_reference,omitempty"`
	SpaceName      string    `json:"space_name,omitempty"`
	UserID         uuid.UUID `json:"user_id"`
	Type           string    `json:"type"`
	Method         string    `json:"method"`
	AmountCentavos int64     `json:"amount_centavos"`
	TransactionID  string    `json:"transaction_id"`
	Status         string    `json:"status"`
	PaidAt         time.Time `json:"paid_at"`
	CreatedAt      time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsMember     bool      `json:"is_member"`
}

type MembershipPlanView struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	DurationType       string    `json:"duration_type"`
	PriceCentavos      int64     `json:"price_centavos"`
	DiscountPercentage float64   `json:"discount_percentage"`
	Benefits           string    `json:"benefits,omitempty"`
}

// BookingFilter narrows the staff-facing ListAll query.
type BookingFilter struct {
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
}
