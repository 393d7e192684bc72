package readstore

import (
	"context"

	"deskbook/internal/infra"
	"deskbook/internal/infra/db"
	"deskbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const findUserByIDSQL = `
SELECT id, email, password_hash, name, role,
       is_member AND (membership_expiry IS NULL OR membership_expiry > NOW())
FROM users WHERE id = $1`

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&v.ID, &v.Email, &v.PasswordHash, &v.Name, &v.Role, &v.IsMember,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &v, nil
}

const findUserByEmailSQL = `
SELECT id, email, password_hash, name, role,
       is_member AND (membership_expiry IS NULL OR membership_expiry > NOW())
FROM users WHERE email = $1`

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&v.ID, &v.Email, &v.PasswordHash, &v.Name, &v.Role, &v.IsMember,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return &v, nil
}

const listPlansSQL = `
SELECT id, name, duration_type, price_centavos, discount_percentage, COALESCE(benefits, '')
FROM membership_plans
WHERE is_active
ORDER BY price_centavos`

func (r *UserReadStore) FindAllPlans(ctx context.Context) ([]*queries.MembershipPlanView, error) {
	rows, err := r.db.Query(ctx, listPlansSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list membership plans", err)
	}
	defer rows.Close()

	views := make([]*queries.MembershipPlanView, 0)
	for rows.Next() {
		var v queries.MembershipPlanView
		scanErr := rows.Scan(&v.ID, &v.Name, &v.DurationType, &v.PriceCentavos, &v.DiscountPercentage, &v.Benefits)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan membership plan row", scanErr)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate membership plan rows", err)
	}

	return views, nil
}
