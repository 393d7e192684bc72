package shared

import (
	"context"
	"time"

	"deskbook/internal/domain/booking"
	"deskbook/internal/domain/payment"
	"deskbook/internal/domain/space"
	"deskbook/internal/domain/user"
	"deskbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// Reads: Pool-bound command reads for validation outside transactions
	Reads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Payments() PaymentRepository
	Spaces() SpaceRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the reads the write side needs: current entities, row
// locks, and the committed-seat sum behind capacity admission.
type CommandReads interface {
	SpaceTypeByID(ctx context.Context, id uuid.UUID) (*space.SpaceType, error)
	// SpaceTypeForUpdate locks the space type row for the rest of the
	// transaction, serializing concurrent check-then-insert sequences.
	SpaceTypeForUpdate(ctx context.Context, id uuid.UUID) (*space.SpaceType, error)
	// CommittedSeats sums seats over confirmed/in_progress bookings of the
	// space type whose window overlaps [start, end).
	CommittedSeats(ctx context.Context, spaceTypeID uuid.UUID, start, end time.Time) (int32, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	PlanByID(ctx context.Context, id uuid.UUID) (*MembershipPlan, error)
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
}

type PaymentRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, t *payment.Transaction) (uuid.UUID, error)
}

type SpaceRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, s *space.SpaceType) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params UpdateSpaceParams) error
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
	UpdateMembership(ctx context.Context, dbtx db.DBTX, u *user.User) error
}
