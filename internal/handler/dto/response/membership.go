package response

import (
	"time"

	"deskbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubscribeResponse struct {
	PlanID uuid.UUID `json:"plan_id"`
	Start  time.Time `json:"start"`
	Expiry time.Time `json:"expiry"`
}

func FromSubscribeResult(res *commands.SubscribeResult) *SubscribeResponse {
	return &SubscribeResponse{
		PlanID: res.PlanID,
		Start:  res.Start,
		Expiry: res.Expiry,
	}
}
