package components

import (
	"deskbook/internal/handler"
	"deskbook/internal/handler/api"
	"deskbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewSpaceHandler,
		api.NewMembershipHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	booking *api.BookingHandler,
	payment *api.PaymentHandler,
	space *api.SpaceHandler,
	membership *api.MembershipHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:       auth,
		Booking:    booking,
		Payment:    payment,
		Space:      space,
		Membership: membership,
	}
}
