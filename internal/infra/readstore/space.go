package readstore

import (
	"context"
	"time"

	"deskbook/internal/infra"
	"deskbook/internal/infra/db"
	"deskbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SpaceReadStore struct {
	db db.DBTX
}

func NewSpaceReadStore(dbtx db.DBTX) *SpaceReadStore {
	return &SpaceReadStore{db: dbtx}
}

const spaceTypeColumns = `
    id, name, description, total_capacity,
    hourly_rate_centavos, half_day_rate_centavos, full_day_rate_centavos,
    weekly_rate_centavos, monthly_rate_centavos,
    member_discount_percent, image_url, is_active, created_at, updated_at`

const findSpaceByIDSQL = `SELECT` + spaceTypeColumns + `
FROM space_types WHERE id = $1`

func (r *SpaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SpaceTypeView, error) {
	row := r.db.QueryRow(ctx, findSpaceByIDSQL, id)

	view, err := scanSpaceTypeView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("space type not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find space type by ID", err)
	}

	return view, nil
}

const listActiveSpacesSQL = `SELECT` + spaceTypeColumns + `
FROM space_types WHERE is_active ORDER BY name`

func (r *SpaceReadStore) FindAllActive(ctx context.Context) ([]*queries.SpaceTypeView, error) {
	rows, err := r.db.Query(ctx, listActiveSpacesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list space types", err)
	}
	defer rows.Close()

	views := make([]*queries.SpaceTypeView, 0)
	for rows.Next() {
		view, scanErr := scanSpaceTypeView(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan space type row", scanErr)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate space type rows", err)
	}

	return views, nil
}

// committedSeatsSQL counts seats held by capacity-holding bookings whose
// window overlaps [start, end). Both intervals are half-open, so a booking
// ending exactly at $2 does not collide with one starting there.
const committedSeatsSQL = `
SELECT COALESCE(SUM(seats), 0)::int
FROM bookings
WHERE space_type_id = $1
  AND status IN ('confirmed', 'in_progress')
  AND start_time < $3
  AND end_time > $2`

func (r *SpaceReadStore) CommittedSeats(ctx context.Context, spaceTypeID uuid.UUID, start, end time.Time) (int32, error) {
	var committed int32
	err := r.db.QueryRow(ctx, committedSeatsSQL, spaceTypeID, start, end).Scan(&committed)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum committed seats", err)
	}

	return committed, nil
}

func scanSpaceTypeView(row pgx.Row) (*queries.SpaceTypeView, error) {
	var v queries.SpaceTypeView
	err := row.Scan(
		&v.ID, &v.Name, &v.Description, &v.TotalCapacity,
		&v.HourlyRateCentavos, &v.HalfDayRateCentavos, &v.FullDayRateCentavos,
		&v.WeeklyRateCentavos, &v.MonthlyRateCentavos,
		&v.MemberDiscountPercent, &v.ImageURL, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
