// AngelaMos | 2026
// repository.go

package quran

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
	List(ctx context.Context, params ListParams) ([]Request, int, error)
	ListAllForStats(ctx context.Context) ([]StatsRow, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	Create(ctx context.Context, request *Request) error
	Update(ctx context.Context, request *Request) error
	Delete(ctx context.Context, id string) error
	BulkSetStatus(
		ctx context.Context,
		ids []string,
		status string,
		deliveredAt *time.Time,
	) ([]Request, error)
}

type StatsRow struct {
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const requestColumns = `id, user_id, full_name, email, phone, address, city,
	state, country, zip_code, preferred_language, reason, status, admin_notes,
	delivered_at, created_at, updated_at`

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Request, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	argn := 1

	if params.Search != "" {
		where += fmt.Sprintf(
			" AND (full_name ILIKE $%d OR email ILIKE $%d OR city ILIKE $%d OR state ILIKE $%d)",
			argn, argn, argn, argn,
		)
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argn++
	}
	if params.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argn)
		args = append(args, params.Status)
		argn++
	}
	if params.Country != "" {
		where += fmt.Sprintf(" AND country = $%d", argn)
		args = append(args, params.Country)
		argn++
	}
	if params.State != "" {
		where += fmt.Sprintf(" AND state = $%d", argn)
		args = append(args, params.State)
		argn++
	}
	if params.PreferredLanguage != "" {
		where += fmt.Sprintf(" AND preferred_language = $%d", argn)
		args = append(args, params.PreferredLanguage)
		argn++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM free_quran_requests" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count quran requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM free_quran_requests%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		requestColumns, where, argn, argn+1,
	)
	args = append(args, params.Limit, params.Offset())

	requests := []Request{}
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list quran requests: %w", err)
	}

	return requests, total, nil
}

func (r *repository) ListAllForStats(ctx context.Context) ([]StatsRow, error) {
	query := `SELECT status, created_at FROM free_quran_requests`

	rows := []StatsRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list quran requests for stats: %w", err)
	}

	return rows, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Request, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM free_quran_requests WHERE id = $1`,
		requestColumns,
	)

	var request Request
	err := r.db.GetContext(ctx, &request, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get quran request: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quran request: %w", err)
	}

	return &request, nil
}

func (r *repository) Create(ctx context.Context, request *Request) error {
	query := `
		INSERT INTO free_quran_requests (
			user_id, full_name, email, phone, address, city, state,
			country, zip_code, preferred_language, reason, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(
		ctx,
		request,
		query,
		request.UserID,
		request.FullName,
		request.Email,
		request.Phone,
		request.Address,
		request.City,
		request.State,
		request.Country,
		request.ZipCode,
		request.PreferredLanguage,
		request.Reason,
		request.Status,
	)
	if err != nil {
		return fmt.Errorf("create quran request: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, request *Request) error {
	query := `
		UPDATE free_quran_requests
		SET full_name = $2,
		    email = $3,
		    phone = $4,
		    address = $5,
		    city = $6,
		    state = $7,
		    country = $8,
		    zip_code = $9,
		    preferred_language = $10,
		    reason = $11,
		    status = $12,
		    admin_notes = $13,
		    delivered_at = $14,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(
		ctx,
		&request.UpdatedAt,
		query,
		request.ID,
		request.FullName,
		request.Email,
		request.Phone,
		request.Address,
		request.City,
		request.State,
		request.Country,
		request.ZipCode,
		request.PreferredLanguage,
		request.Reason,
		request.Status,
		request.AdminNotes,
		request.DeliveredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update quran request: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update quran request: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM free_quran_requests WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete quran request: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quran request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete quran request: %w", core.ErrNotFound)
	}

	return nil
}

// BulkSetStatus updates every listed request in one statement and
// returns the rows as updated. Ids that match no row are silently
// skipped; the caller reads the returned slice for the actual count.
func (r *repository) BulkSetStatus(
	ctx context.Context,
	ids []string,
	status string,
	deliveredAt *time.Time,
) ([]Request, error) {
	if len(ids) == 0 {
		return []Request{}, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		UPDATE free_quran_requests
		SET status = ?,
		    delivered_at = COALESCE(?, delivered_at),
		    updated_at = NOW()
		WHERE id IN (?)
		RETURNING %s`, requestColumns),
		status, deliveredAt, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("build bulk update query: %w", err)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	updated := []Request{}
	if err := r.db.SelectContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("bulk update quran requests: %w", err)
	}

	return updated, nil
}
