package queries

import (
	"context"
	"time"

	"deskbook/internal/infra"
	"deskbook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSpaceNotFound = errs.New("space type not found")
	ErrInvalidWindow = errs.New("invalid availability window")
)

type SpaceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SpaceTypeView, error)
	FindAllActive(ctx context.Context) ([]*SpaceTypeView, error)
	// CommittedSeats sums seats over confirmed/in_progress bookings
	// overlapping [start, end), half-open at both edges.
	CommittedSeats(ctx context.Context, spaceTypeID uuid.UUID, start, end time.Time) (int32, error)
}

type SpaceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SpaceTypeView, error)
	ListActive(ctx context.Context) ([]*SpaceTypeView, error)
	CheckAvailability(ctx context.Context, spaceTypeID uuid.UUID, start, end time.Time, seats int32) (*AvailabilityView, error)
}

type spaceQueriesImpl struct {
	store SpaceReadStore
}

func NewSpaceQueries(store SpaceReadStore) SpaceQueries {
	return &spaceQueriesImpl{store: store}
}

func (q *spaceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpaceTypeView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *spaceQueriesImpl) ListActive(ctx context.Context) ([]*SpaceTypeView, error) {
	return q.store.FindAllActive(ctx)
}

// CheckAvailability is advisory: it reads without locking, so the answer can
// be stale by the time a create lands. Creation re-checks under a row lock.
func (q *spaceQueriesImpl) CheckAvailability(ctx context.Context, spaceTypeID uuid.UUID, start, end time.Time, seats int32) (*AvailabilityView, error) {
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}

	spaceView, err := q.GetByID(ctx, spaceTypeID)
	if err != nil {
		return nil, err
	}

	booked, err := q.store.CommittedSeats(ctx, spaceTypeID, start, end)
	if err != nil {
		return nil, err
	}

	available := spaceView.TotalCapacity - booked

	return &AvailabilityView{
		TotalCapacity:  spaceView.TotalCapacity,
		BookedSeats:    booked,
		AvailableSeats: available,
		RequestedSeats: seats,
		IsAvailable:    available >= seats,
	}, nil
}
