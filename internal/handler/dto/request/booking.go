package request

import (
	"time"

	"deskbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SpaceTypeID    uuid.UUID `json:"space_type_id" binding:"required"`
	Seats          int32     `json:"seats" binding:"required,min=1"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	DurationUnit   string    `json:"duration_unit"`
	SpecialRequest string    `json:"special_request"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		SpaceTypeID:    r.SpaceTypeID,
		Seats:          r.Seats,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		DurationUnit:   r.DurationUnit,
		SpecialRequest: r.SpecialRequest,
	}
}

type OverrideStatusRequest struct {
	Status       string     `json:"status" binding:"required"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
}

func (r OverrideStatusRequest) ToCommand() commands.OverrideStatusRequest {
	return commands.OverrideStatusRequest{
		Status:       r.Status,
		CheckInTime:  r.CheckInTime,
		CheckOutTime: r.CheckOutTime,
	}
}
