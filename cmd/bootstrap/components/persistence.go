package components

import (
	"deskbook/internal/infra/db"
	"deskbook/internal/infra/events"
	"deskbook/internal/infra/metrics"
	"deskbook/internal/infra/readstore"
	"deskbook/internal/infra/uow"
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
	sideEffectsModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Space
		fx.Annotate(
			readstore.NewSpaceReadStore,
			fx.As(new(queries.SpaceReadStore)),
		),
		// Payment
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

var sideEffectsModule = fx.Module("persistence/sideeffects",
	fx.Provide(
		events.NewPublisher,
		fx.Annotate(
			metrics.NewRecorder,
			fx.As(new(commands.Metrics)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
