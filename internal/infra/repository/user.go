package repository

import (
	"context"

	"deskbook/internal/domain/user"
	"deskbook/internal/infra"
	"deskbook/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (id, email, password_hash, name, phone, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := dbtx.QueryRow(ctx, createUserSQL,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Name(),
		u.Phone(),
		u.Role().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}

	return id, nil
}

const updateLastLoginSQL = `
UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, updateLastLoginSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

const updateMembershipSQL = `
UPDATE users SET
    is_member = $2,
    membership_plan_id = $3,
    membership_start = $4,
    membership_expiry = $5,
    updated_at = NOW()
WHERE id = $1`

func (r *UserRepository) UpdateMembership(ctx context.Context, dbtx db.DBTX, u *user.User) error {
	tag, err := dbtx.Exec(ctx, updateMembershipSQL,
		u.ID(),
		u.IsMember(),
		u.MembershipPlanID(),
		u.MembershipStart(),
		u.MembershipExpiry(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update membership", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found for membership update", nil, infra.KindNotFound)
	}

	return nil
}
