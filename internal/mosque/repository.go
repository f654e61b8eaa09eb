// AngelaMos | 2026
// repository.go

package mosque

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/deenhub-app/admin-backend/internal/core"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Mosque, int, error)
	ListAllForStats(ctx context.Context) ([]StatsRow, error)
	ListAllFacilityTypes(ctx context.Context) ([]string, error)
	FacilitiesFor(ctx context.Context, mosqueIDs []string) ([]Facility, error)
	GetByID(ctx context.Context, id string) (*Mosque, error)
	Create(ctx context.Context, mosque *Mosque) error
	Update(ctx context.Context, mosque *Mosque) error
	Delete(ctx context.Context, id string) error
	AddFacilities(ctx context.Context, mosqueID string, facilities []FacilityInput) error
	DeleteFacilities(ctx context.Context, mosqueID string) error
}

type StatsRow struct {
	Timezone  string    `db:"timezone"`
	CreatedAt time.Time `db:"created_at"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const mosqueColumns = `id, name, address, latitude, longitude, timezone,
	phone, website, additional_info, created_at, updated_at`

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Mosque, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argn := 1

	if params.Search != "" {
		where += fmt.Sprintf(
			" AND (name ILIKE $%d OR address ILIKE $%d OR additional_info ILIKE $%d)",
			argn, argn, argn,
		)
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argn++
	}
	if params.Timezone != "" {
		where += fmt.Sprintf(" AND timezone = $%d", argn)
		args = append(args, params.Timezone)
		argn++
	}
	if params.Facility != "" {
		where += fmt.Sprintf(
			` AND EXISTS (
				SELECT 1 FROM mosque_facilities mf
				WHERE mf.mosque_id = mosques_metadata.id
				  AND mf.facility_type = $%d
			)`, argn,
		)
		args = append(args, params.Facility)
		argn++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM mosques_metadata" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count mosques: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM mosques_metadata%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		mosqueColumns, where, argn, argn+1,
	)
	args = append(args, params.Limit, params.Offset())

	mosques := []Mosque{}
	if err := r.db.SelectContext(ctx, &mosques, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list mosques: %w", err)
	}

	return mosques, total, nil
}

func (r *repository) ListAllForStats(ctx context.Context) ([]StatsRow, error) {
	query := `SELECT timezone, created_at FROM mosques_metadata`

	rows := []StatsRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list mosques for stats: %w", err)
	}

	return rows, nil
}

func (r *repository) ListAllFacilityTypes(ctx context.Context) ([]string, error) {
	query := `SELECT facility_type FROM mosque_facilities`

	types := []string{}
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list facility types: %w", err)
	}

	return types, nil
}

func (r *repository) FacilitiesFor(
	ctx context.Context,
	mosqueIDs []string,
) ([]Facility, error) {
	if len(mosqueIDs) == 0 {
		return []Facility{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, mosque_id, facility_type, availability, description, created_at
		FROM mosque_facilities
		WHERE mosque_id IN (?)
		ORDER BY facility_type ASC`,
		mosqueIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("build facility query: %w", err)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	facilities := []Facility{}
	if err := r.db.SelectContext(ctx, &facilities, query, args...); err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}

	return facilities, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Mosque, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM mosques_metadata WHERE id = $1`,
		mosqueColumns,
	)

	var mosque Mosque
	err := r.db.GetContext(ctx, &mosque, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get mosque: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get mosque: %w", err)
	}

	return &mosque, nil
}

func (r *repository) Create(ctx context.Context, mosque *Mosque) error {
	query := `
		INSERT INTO mosques_metadata (
			name, address, latitude, longitude, timezone, phone, website,
			additional_info
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(
		ctx,
		mosque,
		query,
		mosque.Name,
		mosque.Address,
		mosque.Latitude,
		mosque.Longitude,
		mosque.Timezone,
		mosque.Phone,
		mosque.Website,
		mosque.AdditionalInfo,
	)
	if err != nil {
		return fmt.Errorf("create mosque: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, mosque *Mosque) error {
	query := `
		UPDATE mosques_metadata
		SET name = $2,
		    address = $3,
		    latitude = $4,
		    longitude = $5,
		    timezone = $6,
		    phone = $7,
		    website = $8,
		    additional_info = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(
		ctx,
		&mosque.UpdatedAt,
		query,
		mosque.ID,
		mosque.Name,
		mosque.Address,
		mosque.Latitude,
		mosque.Longitude,
		mosque.Timezone,
		mosque.Phone,
		mosque.Website,
		mosque.AdditionalInfo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update mosque: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update mosque: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM mosques_metadata WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete mosque: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete mosque: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete mosque: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) AddFacilities(
	ctx context.Context,
	mosqueID string,
	facilities []FacilityInput,
) error {
	if len(facilities) == 0 {
		return nil
	}

	rows := make([]Facility, 0, len(facilities))
	for _, f := range facilities {
		rows = append(rows, Facility{
			MosqueID:     mosqueID,
			FacilityType: f.FacilityType,
			Availability: f.Availability,
			Description:  f.Description,
		})
	}

	query := `
		INSERT INTO mosque_facilities (mosque_id, facility_type, availability, description)
		VALUES (:mosque_id, :facility_type, :availability, :description)`

	if _, err := sqlx.NamedExecContext(ctx, r.db, query, rows); err != nil {
		return fmt.Errorf("add facilities: %w", err)
	}

	return nil
}

func (r *repository) DeleteFacilities(
	ctx context.Context,
	mosqueID string,
) error {
	_, err := r.db.ExecContext(
		ctx,
		`DELETE FROM mosque_facilities WHERE mosque_id = $1`,
		mosqueID,
	)
	if err != nil {
		return fmt.Errorf("delete facilities: %w", err)
	}

	return nil
}
