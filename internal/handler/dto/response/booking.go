package response

import (
	"deskbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingResponse struct {
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
}

func FromCreateBookingResult(res *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:        res.BookingID,
		Reference: res.Reference,
		Status:    "pending",
	}
}

type CapacityConflictResponse struct {
	Error          string `json:"error"`
	RequestedSeats int32  `json:"requested_seats"`
	AvailableSeats int32  `json:"available_seats"`
}
