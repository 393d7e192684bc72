//go:build unit

package user_test

import (
	"testing"
	"time"

	"deskbook/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "valid address", input: "jose@example.com", want: "jose@example.com"},
		{name: "trims surrounding whitespace", input: "  maria@example.ph  ", want: "maria@example.ph"},
		{name: "plus addressing", input: "dev+test@example.com", want: "dev+test@example.com"},
		{name: "empty", input: "", errIs: user.ErrInvalidEmail},
		{name: "missing domain", input: "nobody@", errIs: user.ErrInvalidEmail},
		{name: "missing at sign", input: "nobody.example.com", errIs: user.ErrInvalidEmail},
		{name: "missing tld", input: "nobody@localhost", errIs: user.ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := user.NewEmail(tc.input)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, email.Value())
		})
	}
}

func TestPassword(t *testing.T) {
	_, err := user.NewPassword("short7!")
	assert.ErrorIs(t, err, user.ErrPasswordTooWeak)

	pw, err := user.NewPassword("longenough")
	require.NoError(t, err)
	assert.Equal(t, "longenough", pw.Value())
}

func TestRole(t *testing.T) {
	t.Run("parsing", func(t *testing.T) {
		role, err := user.NewRole("staff")
		require.NoError(t, err)
		assert.Equal(t, user.RoleStaff, role)

		_, err = user.NewRole("superuser")
		assert.ErrorIs(t, err, user.ErrInvalidRole)
	})

	t.Run("staff check covers staff and admin", func(t *testing.T) {
		assert.False(t, user.RoleCustomer.IsStaff())
		assert.True(t, user.RoleStaff.IsStaff())
		assert.True(t, user.RoleAdmin.IsStaff())
	})
}

func TestMembership(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	newCustomer := func(t *testing.T) *user.User {
		t.Helper()
		email, err := user.NewEmail("member@example.com")
		require.NoError(t, err)
		return user.NewUser(email, "hash", "Member", "", user.RoleCustomer)
	}

	t.Run("subscribe activates the membership", func(t *testing.T) {
		u := newCustomer(t)
		require.False(t, u.HasActiveMembership(now))

		planID := uuid.New()
		expiry := now.AddDate(0, 1, 0)
		u.Subscribe(planID, now, expiry)

		assert.True(t, u.IsMember())
		assert.True(t, u.HasActiveMembership(now))
		require.NotNil(t, u.MembershipPlanID())
		assert.Equal(t, planID, *u.MembershipPlanID())
	})

	t.Run("membership lapses after expiry", func(t *testing.T) {
		u := newCustomer(t)
		u.Subscribe(uuid.New(), now, now.AddDate(0, 1, 0))

		assert.True(t, u.HasActiveMembership(now.AddDate(0, 1, 0)))
		assert.False(t, u.HasActiveMembership(now.AddDate(0, 1, 0).Add(time.Second)))
	})

	t.Run("cancel clears the membership", func(t *testing.T) {
		u := newCustomer(t)
		u.Subscribe(uuid.New(), now, now.AddDate(0, 1, 0))
		u.CancelMembership()

		assert.False(t, u.IsMember())
		assert.Nil(t, u.MembershipPlanID())
		assert.False(t, u.HasActiveMembership(now))
	})
}
