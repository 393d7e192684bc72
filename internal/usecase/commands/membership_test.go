//go:build unit

package commands_test

import (
	"context"
	"testing"

	"deskbook/internal/domain/user"
	"deskbook/internal/pkg/clock"
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type membershipFixture struct {
	uow    *fakeUoW
	uc     commands.MembershipCommands
	userID uuid.UUID
	plan   *shared.MembershipPlan
}

func newMembershipFixture(t *testing.T, durationType string) *membershipFixture {
	t.Helper()

	uow := newFakeUoW()

	email, err := user.NewEmail("member@example.com")
	require.NoError(t, err)
	customer := user.NewUser(email, "hash", "Member", "", user.RoleCustomer)
	uow.tx.reads.users[customer.ID()] = customer

	plan := &shared.MembershipPlan{
		ID:                 uuid.New(),
		Name:               "Basic " + durationType,
		DurationType:       durationType,
		PriceCentavos:      150000,
		DiscountPercentage: 10,
		IsActive:           true,
	}
	uow.tx.reads.plans[plan.ID] = plan

	return &membershipFixture{
		uow:    uow,
		uc:     commands.NewMembershipUseCase(uow, clock.NewMockClock(testNow)),
		userID: customer.ID(),
		plan:   plan,
	}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("monthly plan expires one month out", func(t *testing.T) {
		f := newMembershipFixture(t, "monthly")

		result, err := f.uc.Subscribe(ctx, f.userID, f.plan.ID)
		require.NoError(t, err)

		assert.Equal(t, testNow, result.Start)
		assert.Equal(t, testNow.AddDate(0, 1, 0), result.Expiry)

		member := f.uow.tx.reads.users[f.userID]
		assert.True(t, member.HasActiveMembership(testNow))
		require.Len(t, f.uow.tx.users.membershipUpdates, 1)
	})

	t.Run("quarterly and annual durations", func(t *testing.T) {
		quarterly := newMembershipFixture(t, "quarterly")
		result, err := quarterly.uc.Subscribe(ctx, quarterly.userID, quarterly.plan.ID)
		require.NoError(t, err)
		assert.Equal(t, testNow.AddDate(0, 3, 0), result.Expiry)

		annual := newMembershipFixture(t, "annual")
		result, err = annual.uc.Subscribe(ctx, annual.userID, annual.plan.ID)
		require.NoError(t, err)
		assert.Equal(t, testNow.AddDate(1, 0, 0), result.Expiry)
	})

	t.Run("active membership blocks a second subscription", func(t *testing.T) {
		f := newMembershipFixture(t, "monthly")
		_, err := f.uc.Subscribe(ctx, f.userID, f.plan.ID)
		require.NoError(t, err)

		_, err = f.uc.Subscribe(ctx, f.userID, f.plan.ID)
		assert.ErrorIs(t, err, commands.ErrAlreadySubscribed)
	})

	t.Run("lapsed membership can resubscribe", func(t *testing.T) {
		f := newMembershipFixture(t, "monthly")
		member := f.uow.tx.reads.users[f.userID]
		member.Subscribe(uuid.New(), testNow.AddDate(0, -2, 0), testNow.AddDate(0, -1, 0))

		_, err := f.uc.Subscribe(ctx, f.userID, f.plan.ID)
		require.NoError(t, err)
	})

	t.Run("inactive plan", func(t *testing.T) {
		f := newMembershipFixture(t, "monthly")
		f.plan.IsActive = false

		_, err := f.uc.Subscribe(ctx, f.userID, f.plan.ID)
		assert.ErrorIs(t, err, commands.ErrPlanInactive)
	})

	t.Run("unknown plan", func(t *testing.T) {
		f := newMembershipFixture(t, "monthly")
		_, err := f.uc.Subscribe(ctx, f.userID, uuid.New())
		assert.ErrorIs(t, err, commands.ErrPlanNotFound)
	})
}

func TestCancelMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the membership", func(t *testing.T) {
		f := newMembershipFixture(t, "monthly")
		_, err := f.uc.Subscribe(ctx, f.userID, f.plan.ID)
		require.NoError(t, err)

		require.NoError(t, f.uc.CancelMembership(ctx, f.userID))
		assert.False(t, f.uow.tx.reads.users[f.userID].IsMember())
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		f := newMembershipFixture(t, "monthly")
		err := f.uc.CancelMembership(ctx, f.userID)
		assert.ErrorIs(t, err, commands.ErrNoMembership)
	})
}
