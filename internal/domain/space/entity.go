package space

import (
	"errors"
	"strings"
	"time"

	"deskbook/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrEmptySpaceName      = errors.New("space type name cannot be empty")
	ErrSpaceNameTooLong    = errors.New("space type name is too long (max 100 characters)")
	ErrInvalidCapacity     = errors.New("total capacity must be positive")
	ErrInvalidDiscount     = errors.New("member discount percent must be between 0 and 100")
	ErrNegativeRate        = errors.New("rates cannot be negative")
	ErrIncompleteRateTable = errors.New("rate table must cover every duration unit")
)

const MaxSpaceNameLength = 100

// SpaceType is a class of bookable workspace: a seat capacity plus a rate
// table. Rate edits never rewrite prices already stored on bookings.
type SpaceType struct {
	id                    uuid.UUID
	name                  string
	description           string
	totalCapacity         int32
	rates                 pricing.RateTable
	memberDiscountPercent float64
	imageURL              string
	isActive              bool
	createdAt             time.Time
	updatedAt             time.Time
}

func NewSpaceType(
	name, description string,
	totalCapacity int32,
	rates pricing.RateTable,
	memberDiscountPercent float64,
	imageURL string,
) (*SpaceType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySpaceName
	}
	if len(name) > MaxSpaceNameLength {
		return nil, ErrSpaceNameTooLong
	}
	if totalCapacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if memberDiscountPercent < 0 || memberDiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}
	if err := validateRates(rates); err != nil {
		return nil, err
	}

	return &SpaceType{
		id:                    uuid.New(),
		name:                  name,
		description:           description,
		totalCapacity:         totalCapacity,
		rates:                 rates,
		memberDiscountPercent: memberDiscountPercent,
		imageURL:              imageURL,
		isActive:              true,
	}, nil
}

func ReconstructSpaceType(
	id uuid.UUID,
	name, description string,
	totalCapacity int32,
	rates pricing.RateTable,
	memberDiscountPercent float64,
	imageURL string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *SpaceType {
	return &SpaceType{
		id:                    id,
		name:                  name,
		description:           description,
		totalCapacity:         totalCapacity,
		rates:                 rates,
		memberDiscountPercent: memberDiscountPercent,
		imageURL:              imageURL,
		isActive:              isActive,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

func validateRates(rates pricing.RateTable) error {
	units := []pricing.DurationUnit{
		pricing.UnitHourly, pricing.UnitHalfDay, pricing.UnitFullDay,
		pricing.UnitWeekly, pricing.UnitMonthly,
	}
	for _, unit := range units {
		rate, ok := rates.Rate(unit)
		if !ok {
			return ErrIncompleteRateTable
		}
		if rate.IsNegative() {
			return ErrNegativeRate
		}
	}
	return nil
}

func (s *SpaceType) ID() uuid.UUID                  { return s.id }
func (s *SpaceType) Name() string                   { return s.name }
func (s *SpaceType) Description() string            { return s.description }
func (s *SpaceType) TotalCapacity() int32           { return s.totalCapacity }
func (s *SpaceType) Rates() pricing.RateTable       { return s.rates }
func (s *SpaceType) MemberDiscountPercent() float64 { return s.memberDiscountPercent }
func (s *SpaceType) ImageURL() string               { return s.imageURL }
func (s *SpaceType) IsActive() bool                 { return s.isActive }
func (s *SpaceType) CreatedAt() time.Time           { return s.createdAt }
func (s *SpaceType) UpdatedAt() time.Time           { return s.updatedAt }
