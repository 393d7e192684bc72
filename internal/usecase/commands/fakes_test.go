//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"deskbook/internal/domain/booking"
	"deskbook/internal/domain/payment"
	"deskbook/internal/domain/space"
	"deskbook/internal/domain/user"
	"deskbook/internal/infra"
	"deskbook/internal/infra/db"
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeUoW runs the transactional closure directly against in-memory state.
// The mutex serializes closures the way the space-type row lock serializes
// concurrent check-then-insert transactions.
type fakeUoW struct {
	mu sync.Mutex
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: newFakeTx()}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return u.tx.reads
}

type fakeTx struct {
	reads    *fakeReads
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	spaces   *fakeSpaceRepo
	users    *fakeUserRepo
}

func newFakeTx() *fakeTx {
	reads := &fakeReads{
		spaceTypes: map[uuid.UUID]*space.SpaceType{},
		bookings:   map[uuid.UUID]*booking.Booking{},
		users:      map[uuid.UUID]*user.User{},
		plans:      map[uuid.UUID]*shared.MembershipPlan{},
	}
	return &fakeTx{
		reads:    reads,
		bookings: &fakeBookingRepo{store: reads.bookings},
		payments: &fakePaymentRepo{},
		spaces:   &fakeSpaceRepo{},
		users:    &fakeUserRepo{},
	}
}

func (t *fakeTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *fakeTx) Payments() shared.PaymentRepository { return t.payments }
func (t *fakeTx) Spaces() shared.SpaceRepository     { return t.spaces }
func (t *fakeTx) Users() shared.UserRepository       { return t.users }
func (t *fakeTx) Reads() shared.CommandReads         { return t.reads }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeReads struct {
	mu         sync.Mutex
	spaceTypes map[uuid.UUID]*space.SpaceType
	bookings   map[uuid.UUID]*booking.Booking
	users      map[uuid.UUID]*user.User
	plans      map[uuid.UUID]*shared.MembershipPlan

	// committedSeats overrides the seat sum when set; otherwise the sum is
	// computed from stored bookings with an overlapping window.
	committedSeats *int32
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, pgx.ErrNoRows)
}

func (r *fakeReads) SpaceTypeByID(_ context.Context, id uuid.UUID) (*space.SpaceType, error) {
	if st, ok := r.spaceTypes[id]; ok {
		return st, nil
	}
	return nil, notFound("space type not found")
}

func (r *fakeReads) SpaceTypeForUpdate(ctx context.Context, id uuid.UUID) (*space.SpaceType, error) {
	return r.SpaceTypeByID(ctx, id)
}

func (r *fakeReads) CommittedSeats(_ context.Context, spaceTypeID uuid.UUID, start, end time.Time) (int32, error) {
	if r.committedSeats != nil {
		return *r.committedSeats, nil
	}

	window, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return 0, err
	}
	var sum int32
	for _, b := range r.bookings {
		if b.SpaceTypeID() == spaceTypeID && b.Status().HoldsCapacity() && b.Slot().Overlaps(window) {
			sum += b.Seats()
		}
	}
	return sum, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	if b, ok := r.bookings[id]; ok {
		return b, nil
	}
	return nil, notFound("booking not found")
}

func (r *fakeReads) BookingForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.BookingByID(ctx, id)
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, notFound("user not found")
}

func (r *fakeReads) PlanByID(_ context.Context, id uuid.UUID) (*shared.MembershipPlan, error) {
	if p, ok := r.plans[id]; ok {
		return p, nil
	}
	return nil, notFound("membership plan not found")
}

type fakeBookingRepo struct {
	store map[uuid.UUID]*booking.Booking
	// duplicateInserts fails this many Creates with a duplicate-key error
	// before succeeding, to exercise reference regeneration.
	duplicateInserts int
	createCalls      int
	updateCalls      int
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.createCalls++
	if r.duplicateInserts > 0 {
		r.duplicateInserts--
		return uuid.Nil, infra.WrapRepoErr("duplicate reference", nil, infra.KindDuplicateKey)
	}
	r.store[b.ID()] = b
	return b.ID(), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.updateCalls++
	if _, ok := r.store[b.ID()]; !ok {
		r.store[b.ID()] = b
	}
	return nil
}

type fakePaymentRepo struct {
	created []*payment.Transaction
}

func (r *fakePaymentRepo) Create(_ context.Context, _ db.DBTX, t *payment.Transaction) (uuid.UUID, error) {
	r.created = append(r.created, t)
	return t.ID(), nil
}

type fakeSpaceRepo struct {
	created  []*space.SpaceType
	updates  []shared.UpdateSpaceParams
	createFn func(*space.SpaceType) (uuid.UUID, error)
}

func (r *fakeSpaceRepo) Create(_ context.Context, _ db.DBTX, s *space.SpaceType) (uuid.UUID, error) {
	if r.createFn != nil {
		return r.createFn(s)
	}
	r.created = append(r.created, s)
	return s.ID(), nil
}

func (r *fakeSpaceRepo) Update(_ context.Context, _ db.DBTX, _ uuid.UUID, params shared.UpdateSpaceParams) error {
	r.updates = append(r.updates, params)
	return nil
}

type fakeUserRepo struct {
	created           []*user.User
	membershipUpdates []*user.User
	createFn          func(*user.User) (uuid.UUID, error)
}

func (r *fakeUserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
	if r.createFn != nil {
		return r.createFn(u)
	}
	r.created = append(r.created, u)
	return u.ID(), nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return nil
}

func (r *fakeUserRepo) UpdateMembership(_ context.Context, _ db.DBTX, u *user.User) error {
	r.membershipUpdates = append(r.membershipUpdates, u)
	return nil
}

type fakePublisher struct {
	events []commands.Event
}

func (p *fakePublisher) Publish(_ context.Context, ev commands.Event) {
	p.events = append(p.events, ev)
}

type fakeMetrics struct {
	created   int
	cancelled int
	payments  []string
}

func (m *fakeMetrics) BookingCreated()   { m.created++ }
func (m *fakeMetrics) BookingCancelled() { m.cancelled++ }
func (m *fakeMetrics) PaymentRecorded(txType string) {
	m.payments = append(m.payments, txType)
}
