//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"deskbook/internal/domain/user"
	"deskbook/internal/infra"
	"deskbook/internal/pkg/jwt"
	"deskbook/internal/pkg/password"
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserReadStore struct {
	byID    map[uuid.UUID]*queries.AuthorizedUserView
	byEmail map[string]*queries.AuthorizedUserView
}

func newFakeUserReadStore() *fakeUserReadStore {
	return &fakeUserReadStore{
		byID:    map[uuid.UUID]*queries.AuthorizedUserView{},
		byEmail: map[string]*queries.AuthorizedUserView{},
	}
}

func (s *fakeUserReadStore) add(view *queries.AuthorizedUserView) {
	s.byID[view.ID] = view
	s.byEmail[view.Email] = view
}

func (s *fakeUserReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	if v, ok := s.byID[id]; ok {
		return v, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserReadStore) FindByEmail(_ context.Context, email string) (*queries.AuthorizedUserView, error) {
	if v, ok := s.byEmail[email]; ok {
		return v, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserReadStore) FindAllPlans(_ context.Context) ([]*queries.MembershipPlanView, error) {
	return nil, nil
}

type authFixture struct {
	uow   *fakeUoW
	store *fakeUserReadStore
	jwt   *jwt.Service
	uc    commands.AuthCommands
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	uow := newFakeUoW()
	store := newFakeUserReadStore()
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	return &authFixture{
		uow:   uow,
		store: store,
		jwt:   jwtService,
		uc:    commands.NewAuthCommands(uow, store, jwtService),
	}
}

func (f *authFixture) addUser(t *testing.T, email, plainPassword, role string) *queries.AuthorizedUserView {
	t.Helper()
	hash, err := password.HashPassword(plainPassword)
	require.NoError(t, err)

	view := &queries.AuthorizedUserView{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		Role:         role,
	}
	f.store.add(view)
	return view
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer with a hashed password", func(t *testing.T) {
		f := newAuthFixture(t)

		result, err := f.uc.Register(ctx, commands.RegisterRequest{
			Email:    "new@example.com",
			Password: "supersecret",
			Name:     "New User",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.UserID)

		require.Len(t, f.uow.tx.users.created, 1)
		created := f.uow.tx.users.created[0]
		assert.Equal(t, "new@example.com", created.Email().Value())
		assert.Equal(t, "customer", created.Role().String())
		assert.NotEqual(t, "supersecret", created.PasswordHash())
		assert.NoError(t, password.ComparePassword(created.PasswordHash(), "supersecret"))
	})

	t.Run("invalid email and weak password", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.uc.Register(ctx, commands.RegisterRequest{Email: "not-an-email", Password: "supersecret"})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)

		_, err = f.uc.Register(ctx, commands.RegisterRequest{Email: "ok@example.com", Password: "short"})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.uow.tx.users.createFn = func(_ *user.User) (uuid.UUID, error) {
			return uuid.Nil, infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}

		_, err := f.uc.Register(ctx, commands.RegisterRequest{Email: "taken@example.com", Password: "supersecret"})
		assert.ErrorIs(t, err, commands.ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a usable token pair", func(t *testing.T) {
		f := newAuthFixture(t)
		view := f.addUser(t, "staff@example.com", "supersecret", "staff")

		result, err := f.uc.Login(ctx, "staff@example.com", "supersecret")
		require.NoError(t, err)

		assert.Equal(t, view.ID, result.UserID)
		assert.Equal(t, "staff", result.Role)

		claims, err := f.jwt.ValidateToken(result.TokenPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, view.ID, claims.UserID)
		assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)

		claims, err = f.jwt.ValidateToken(result.TokenPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, jwt.TokenTypeRefresh, claims.TokenType)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "real@example.com", "supersecret", "customer")

		_, errUnknown := f.uc.Login(ctx, "ghost@example.com", "supersecret")
		_, errWrongPw := f.uc.Login(ctx, "real@example.com", "wrongpassword")

		assert.ErrorIs(t, errUnknown, commands.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrongPw, commands.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the pair from a refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		view := f.addUser(t, "user@example.com", "supersecret", "customer")

		login, err := f.uc.Login(ctx, "user@example.com", "supersecret")
		require.NoError(t, err)

		pair, err := f.uc.RefreshToken(ctx, login.TokenPair.RefreshToken)
		require.NoError(t, err)

		claims, err := f.jwt.ValidateToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, view.ID, claims.UserID)
	})

	t.Run("access tokens cannot refresh", func(t *testing.T) {
		f := newAuthFixture(t)
		f.addUser(t, "user@example.com", "supersecret", "customer")

		login, err := f.uc.Login(ctx, "user@example.com", "supersecret")
		require.NoError(t, err)

		_, err = f.uc.RefreshToken(ctx, login.TokenPair.AccessToken)
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("garbage token", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.uc.RefreshToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, commands.ErrTokenValidation)
	})

	t.Run("deleted account cannot refresh", func(t *testing.T) {
		f := newAuthFixture(t)
		view := f.addUser(t, "user@example.com", "supersecret", "customer")

		login, err := f.uc.Login(ctx, "user@example.com", "supersecret")
		require.NoError(t, err)

		delete(f.store.byID, view.ID)
		_, err = f.uc.RefreshToken(ctx, login.TokenPair.RefreshToken)
		assert.ErrorIs(t, err, commands.ErrUserNotFound)
	})
}
